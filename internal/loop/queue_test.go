package loop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestQueueDrainOrder(t *testing.T) {
	q := NewQueue()
	var got []int

	q.Post(func() { got = append(got, 1) })
	q.Post(func() {
		got = append(got, 2)
		q.Post(func() { got = append(got, 4) })
	})
	q.Post(func() { got = append(got, 3) })

	if q.Len() != 3 {
		t.Errorf("expected 3 queued tasks, got %d", q.Len())
	}

	n := q.Drain()
	if n != 4 {
		t.Errorf("expected 4 tasks run, got %d", n)
	}

	want := []int{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestQueuePostNil(t *testing.T) {
	q := NewQueue()
	q.Post(nil)
	if q.Len() != 0 {
		t.Errorf("expected nil task to be dropped, got %d", q.Len())
	}
}

func TestQueueClose(t *testing.T) {
	q := NewQueue()
	ran := false
	q.Post(func() { ran = true })
	q.Close()
	q.Post(func() { ran = true })

	if q.Drain() != 0 {
		t.Error("expected closed queue to have nothing to drain")
	}
	if ran {
		t.Error("expected no task to run after close")
	}
	if !q.Closed() {
		t.Error("expected Closed() to be true")
	}

	if err := q.Run(context.Background()); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestQueueRunFromOtherGoroutines(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	const producers = 8
	const perProducer = 50

	count := 0
	done := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				q.Post(func() {
					count++
					if count == producers*perProducer {
						close(done)
					}
				})
			}
		}()
	}

	runErr := make(chan error, 1)
	go func() { runErr <- q.Run(ctx) }()

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("timed out waiting for tasks")
	}
	wg.Wait()

	q.Close()
	if err := <-runErr; !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestQueueRunContextCancel(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := q.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
