package api

import (
	"sync"
	"time"
)

// DefaultPollInterval is how often a live query re-runs when the config
// does not say otherwise.
const DefaultPollInterval = 5 * time.Second

// Subscription is a live owner-scoped query over one collection. Each
// delivery on C is a full snapshot that supersedes the previous one; there
// is no incremental patching. Errors go to Errs without stopping the loop,
// so the consumer keeps its last snapshot until a later poll succeeds.
type Subscription[T any] struct {
	C    chan []T
	Errs chan error

	stop chan struct{}
	once sync.Once
}

// subscribe starts the polling loop. The first snapshot is fetched
// immediately rather than one interval in.
func subscribe[T any](list func() ([]T, error), interval time.Duration) *Subscription[T] {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	s := &Subscription[T]{
		C:    make(chan []T, 1),
		Errs: make(chan error, 1),
		stop: make(chan struct{}),
	}
	go s.run(list, interval)
	return s
}

func (s *Subscription[T]) run(list func() ([]T, error), interval time.Duration) {
	s.poll(list)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.poll(list)
		}
	}
}

func (s *Subscription[T]) poll(list func() ([]T, error)) {
	items, err := list()
	if err != nil {
		// Latest error wins; an unread stale one is dropped.
		select {
		case <-s.Errs:
		default:
		}
		select {
		case s.Errs <- err:
		case <-s.stop:
		}
		return
	}

	// Snapshot-replace semantics: drop an unconsumed older snapshot so the
	// consumer only ever sees the newest one.
	select {
	case <-s.C:
	default:
	}
	select {
	case s.C <- items:
	case <-s.stop:
	}
}

// Unsubscribe stops the polling loop. It is safe to call more than once,
// and safe to call concurrently with deliveries.
func (s *Subscription[T]) Unsubscribe() {
	s.once.Do(func() { close(s.stop) })
}

// SubscribeTasks starts a live query for the tasks owned by ownerID.
func (c *Client) SubscribeTasks(ownerID string, interval time.Duration) *Subscription[Task] {
	return subscribe(func() ([]Task, error) {
		return c.ListTasks(ownerID)
	}, interval)
}

// SubscribeGoals starts a live query for the goals owned by ownerID.
func (c *Client) SubscribeGoals(ownerID string, interval time.Duration) *Subscription[Goal] {
	return subscribe(func() ([]Goal, error) {
		return c.ListGoals(ownerID)
	}, interval)
}
