// Package main is the entry point for the My Day terminal task tracker.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/api"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/auth"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/config"
	"github.com/sojwal094-prodex/my-task-manager-app/internal/tui"
)

const version = "0.1.0"

const helpText = `myday - Terminal task and goal tracker

USAGE:
    myday [OPTIONS]

OPTIONS:
    -h, --help      Show this help message
    -v, --version   Show version information
    --init          Create a template config file
    --progress      Start in the progress view
    --goals         Start in the goals view

CONFIGURATION:
    Config file: ~/.config/myday/config.yaml

    To get started:
    1. Run 'myday --init' to create a config template
    2. Fill in your project ID and API key
    3. Run 'myday'

KEYBINDINGS:
    1/2/3       Switch view (Day / Progress / Goals)
    j/k         Move down/up
    h/l         Previous/next day
    t           Go to today
    a           Add a task or goal
    e/Enter     Edit selected task
    x/Space     Toggle complete
    d           Delete (with confirmation)
    y           Copy task text to clipboard
    T           Toggle light/dark theme
    q           Quit
`

const configTemplate = `# My Day Configuration
# Location: ~/.config/myday/config.yaml

api:
  # Project hosting the document database.
  project_id: ""

  # Application namespace inside the database.
  app_id: "default-app-id"

  # API key for sign-in. Sign-in is anonymous unless a custom token is set.
  key: ""
  # custom_token: ""

  # How often live queries refresh.
  poll_interval: 5s

ui:
  # "light" or "dark"; also toggled in-app with T.
  theme: light
  notifications: true
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showHelp     bool
		showVersion  bool
		initConfig   bool
		viewProgress bool
		viewGoals    bool
	)

	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showVersion, "v", false, "Show version (shorthand)")
	flag.BoolVar(&initConfig, "init", false, "Create template config file")
	flag.BoolVar(&viewProgress, "progress", false, "Start in progress view")
	flag.BoolVar(&viewGoals, "goals", false, "Start in goals view")

	flag.Usage = func() {
		fmt.Print(helpText)
	}

	flag.Parse()

	if showHelp {
		fmt.Print(helpText)
		return nil
	}

	if showVersion {
		fmt.Printf("myday version %s\n", version)
		return nil
	}

	if initConfig {
		return createConfigTemplate()
	}

	initialView := ""
	if viewProgress {
		initialView = "progress"
	} else if viewGoals {
		initialView = "goals"
	}

	return runApp(initialView)
}

// createConfigTemplate creates a template configuration file.
func createConfigTemplate() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n\n", path)
	fmt.Println("Next steps:")
	fmt.Println("  1. Fill in api.project_id and api.key")
	fmt.Println("  2. Run 'myday' to start")

	return nil
}

// runApp signs in and starts the TUI. A failure before the program starts
// is fatal to the session; nothing below retries it.
func runApp(initialView string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !cfg.HasCredentials() {
		path, _ := config.ConfigPath()
		fmt.Println("No backend configured.")
		fmt.Println()
		fmt.Println("To get started:")
		fmt.Printf("  1. Run 'myday --init' to create a config file at:\n     %s\n", path)
		fmt.Println("  2. Fill in api.project_id and api.key")
		fmt.Println("  3. Run 'myday' again")
		return nil
	}

	authClient := auth.NewClient(cfg.API.Key)
	if cfg.API.AuthURL != "" {
		authClient.SetBaseURL(cfg.API.AuthURL)
	}

	session, err := authClient.SignIn(cfg.API.CustomToken)
	if err != nil {
		return fmt.Errorf("failed to initialize the app: %w", err)
	}

	client := api.NewClient(cfg.API.ProjectID, cfg.API.AppID, session.IDToken)
	if cfg.API.BaseURL != "" {
		client.SetBaseURL(cfg.API.BaseURL)
	}

	app := tui.NewApp(client, cfg, session.UserID, initialView)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
