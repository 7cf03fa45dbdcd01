package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// mockServer creates a test HTTP server for mocking document store responses.
func mockServer(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(handler)
}

// testClient returns a client pointed at the mock server.
func testClient(server *httptest.Server) *Client {
	client := NewClient("demo-project", "default-app-id", "test-token")
	client.SetBaseURL(server.URL)
	return client
}

func TestNewClient(t *testing.T) {
	client := NewClient("demo-project", "default-app-id", "test-token")

	if client.idToken != "test-token" {
		t.Errorf("expected token %q, got %q", "test-token", client.idToken)
	}
	if client.baseURL != "https://firestore.googleapis.com/v1" {
		t.Errorf("unexpected base URL: %s", client.baseURL)
	}

	wantPath := "/projects/demo-project/databases/(default)/documents/artifacts/default-app-id/public/data/tasks"
	if got := client.collectionPath(CollectionTasks); got != wantPath {
		t.Errorf("collectionPath = %q, want %q", got, wantPath)
	}
}

func TestListTasks(t *testing.T) {
	docName := func(id string) string {
		return "projects/demo-project/databases/(default)/documents/artifacts/default-app-id/public/data/tasks/" + id
	}

	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST request, got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, ":runQuery") {
			t.Errorf("expected runQuery path, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("expected Bearer token, got %q", auth)
		}

		var req runQueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode query request: %v", err)
		}
		ff := req.StructuredQuery.Where.FieldFilter
		if ff.Field.FieldPath != "createdBy" || ff.Op != "EQUAL" || ff.Value.str() != "user-1" {
			t.Errorf("unexpected owner filter: %+v", ff)
		}

		// Out of creation order on purpose; one document has no createTime.
		results := []runQueryResult{
			{Document: &Document{
				Name: docName("b"),
				Fields: map[string]Value{
					"text":      stringValue("second"),
					"completed": boolValue(true),
					"taskDate":  stringValue("2024-01-02"),
					"createdBy": stringValue("user-1"),
				},
				CreateTime: "2024-01-02T08:00:00Z",
			}},
			{}, // progress marker without a document
			{Document: &Document{
				Name: docName("a"),
				Fields: map[string]Value{
					"text":      stringValue("first"),
					"notes":     stringValue("some notes"),
					"taskDate":  stringValue("2024-01-01"),
					"dueDate":   stringValue("2024-01-03"),
					"dueTime":   stringValue("09:30"),
					"time":      stringValue("Anytime"),
					"assignee":  stringValue("You"),
					"createdBy": stringValue("user-1"),
				},
				CreateTime: "2024-01-01T08:00:00Z",
			}},
			{Document: &Document{
				Name: docName("legacy"),
				Fields: map[string]Value{
					"text":      stringValue("no timestamp"),
					"createdBy": stringValue("user-1"),
				},
			}},
		}
		json.NewEncoder(w).Encode(results)
	})
	defer server.Close()

	tasks, err := testClient(server).ListTasks("user-1")
	if err != nil {
		t.Fatalf("ListTasks returned error: %v", err)
	}

	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	// Missing createTime sorts earliest, then ascending by creation time.
	if tasks[0].ID != "legacy" || tasks[1].ID != "a" || tasks[2].ID != "b" {
		t.Errorf("unexpected order: %s, %s, %s", tasks[0].ID, tasks[1].ID, tasks[2].ID)
	}

	first := tasks[1]
	if first.Text != "first" || first.Notes != "some notes" || first.TaskDate != "2024-01-01" {
		t.Errorf("unexpected decoded task: %+v", first)
	}
	if first.DueDate != "2024-01-03" || first.DueTime != "09:30" {
		t.Errorf("due fields not decoded: %+v", first)
	}
	if !tasks[2].Completed {
		t.Error("completed flag not decoded")
	}
}

func TestListTasksError(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"status":"PERMISSION_DENIED"}}`))
	})
	defer server.Close()

	_, err := testClient(server).ListTasks("user-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	apiErr, ok := IsAPIError(err)
	if ok {
		// ListTasks wraps the APIError, so direct assertion only works via
		// the wrapped value; both shapes are acceptable.
		if !apiErr.IsForbidden() {
			t.Errorf("expected forbidden, got status %d", apiErr.StatusCode)
		}
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error should mention status 403: %v", err)
	}
}

func TestCreateTask(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST request, got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/public/data/tasks") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var doc Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}

		// Creation defaults travel with the request.
		if doc.Fields["text"].str() != "Buy milk" {
			t.Errorf("text = %q", doc.Fields["text"].str())
		}
		if doc.Fields["taskDate"].str() != "2024-06-15" {
			t.Errorf("taskDate = %q", doc.Fields["taskDate"].str())
		}
		if doc.Fields["time"].str() != "Anytime" || doc.Fields["assignee"].str() != "You" {
			t.Errorf("defaults missing: %+v", doc.Fields)
		}
		if doc.Fields["completed"].boolean() {
			t.Error("new task must not be completed")
		}
		if doc.Fields["createdBy"].str() != "user-1" {
			t.Errorf("createdBy = %q", doc.Fields["createdBy"].str())
		}

		doc.Name = "projects/p/databases/(default)/documents/artifacts/a/public/data/tasks/new-id"
		doc.CreateTime = "2024-06-15T12:00:00Z"
		json.NewEncoder(w).Encode(doc)
	})
	defer server.Close()

	task, err := testClient(server).CreateTask("user-1", NewTask{
		Text:     "Buy milk",
		TaskDate: "2024-06-15",
	})
	if err != nil {
		t.Fatalf("CreateTask returned error: %v", err)
	}

	if task.ID != "new-id" {
		t.Errorf("task ID = %q, want new-id", task.ID)
	}
	if task.CreatedAt.IsZero() {
		t.Error("CreatedAt should come from the server createTime")
	}
}

func TestUpdateTaskFields(t *testing.T) {
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("expected PATCH request, got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/tasks/task-9") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		mask := r.URL.Query()["updateMask.fieldPaths"]
		want := map[string]bool{"text": true, "notes": true, "dueDate": true, "dueTime": true}
		if len(mask) != len(want) {
			t.Errorf("update mask = %v", mask)
		}
		for _, field := range mask {
			if !want[field] {
				t.Errorf("unexpected masked field %q", field)
			}
		}

		var doc Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if doc.Fields["text"].str() != "Trimmed title" {
			t.Errorf("text = %q", doc.Fields["text"].str())
		}
		if _, ok := doc.Fields["taskDate"]; ok {
			t.Error("taskDate must never be part of an update")
		}
		if _, ok := doc.Fields["completed"]; ok {
			t.Error("completed not named in the update but present")
		}

		json.NewEncoder(w).Encode(doc)
	})
	defer server.Close()

	err := testClient(server).UpdateTaskFields("task-9", TaskFieldUpdate{
		Text:    String("Trimmed title"),
		Notes:   String("notes"),
		DueDate: String("2024-06-20"),
		DueTime: String("14:00"),
	})
	if err != nil {
		t.Fatalf("UpdateTaskFields returned error: %v", err)
	}
}

func TestUpdateTaskFieldsEmptyIsNoop(t *testing.T) {
	called := false
	server := mockServer(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	defer server.Close()

	if err := testClient(server).UpdateTaskFields("task-9", TaskFieldUpdate{}); err != nil {
		t.Fatalf("empty update returned error: %v", err)
	}
	if called {
		t.Error("empty update must not hit the server")
	}
}

func TestDeleteTask(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    bool
	}{
		{"successful delete", http.StatusOK, false},
		{"not found", http.StatusNotFound, true},
		{"server error", http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := mockServer(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete {
					t.Errorf("expected DELETE request, got %s", r.Method)
				}
				if !strings.HasSuffix(r.URL.Path, "/tasks/task-1") {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				w.WriteHeader(tt.statusCode)
			})
			defer server.Close()

			err := testClient(server).DeleteTask("task-1")
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
