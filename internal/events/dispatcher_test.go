package events_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"quizzy-attempt-service/internal/domain"
	"quizzy-attempt-service/internal/events"
)

func TestPublishFansOutToAllHandlers(t *testing.T) {
	dispatcher := events.NewDispatcher()
	var calls int32

	for i := 0; i < 3; i++ {
		dispatcher.Subscribe(domain.AttemptCompletedName, func(_ context.Context, ev domain.Event) error {
			if ev.Name() != domain.AttemptCompletedName {
				t.Errorf("unexpected event %s", ev.Name())
			}
			atomic.AddInt32(&calls, 1)
			return nil
		})
	}

	if err := dispatcher.Publish(context.Background(), domain.AttemptCompleted{AttemptID: "a1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected 3 handler calls, got %d", got)
	}
}

func TestPublishPropagatesErrorButRunsAllHandlers(t *testing.T) {
	dispatcher := events.NewDispatcher()
	handlerErr := errors.New("handler exploded")
	var ran int32

	dispatcher.Subscribe(domain.AttemptCompletedName, func(context.Context, domain.Event) error {
		return handlerErr
	})
	dispatcher.Subscribe(domain.AttemptCompletedName, func(context.Context, domain.Event) error {
		// Slower than the failing handler so a sequential abort would skip it.
		time.Sleep(10 * time.Millisecond)
		atomic.StoreInt32(&ran, 1)
		return nil
	})

	err := dispatcher.Publish(context.Background(), domain.AttemptCompleted{AttemptID: "a1"})
	if !errors.Is(err, handlerErr) {
		t.Fatalf("expected handler error, got %v", err)
	}
	if atomic.LoadInt32(&ran) != 1 {
		t.Fatalf("non-failing handler did not run")
	}
}

func TestPublishDropsEventsWithoutSubscribers(t *testing.T) {
	dispatcher := events.NewDispatcher()
	if err := dispatcher.Publish(context.Background(), domain.AttemptCompleted{AttemptID: "a1"}); err != nil {
		t.Fatalf("unsubscribed events must drop silently, got %v", err)
	}
}

func TestPublishWaitsForWholeBatch(t *testing.T) {
	dispatcher := events.NewDispatcher()
	var done int32

	dispatcher.Subscribe(domain.AttemptCompletedName, func(context.Context, domain.Event) error {
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&done, 1)
		return nil
	})

	evs := []domain.Event{
		domain.AttemptCompleted{AttemptID: "a1"},
		domain.AttemptCompleted{AttemptID: "a2"},
	}
	if err := dispatcher.Publish(context.Background(), evs...); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if atomic.LoadInt32(&done) != 2 {
		t.Fatalf("publish returned before all handlers finished")
	}
}
