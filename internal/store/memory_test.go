package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/words"
)

func newEngine(t *testing.T) *game.Engine {
	t.Helper()
	l, err := words.New([]string{"crane"}, []string{"trace"})
	if err != nil {
		t.Fatal(err)
	}
	e, err := game.New(l, words.FixedSource(0))
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestCreateViewUpdate(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	id, err := st.Create(ctx, newEngine(t), "2026-10-18")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("id %q is not a uuid: %v", id, err)
	}

	err = st.Update(ctx, id, func(s *Session) error {
		_, err := s.Engine.Guess("trace")
		return err
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	err = st.View(ctx, id, func(s *Session) error {
		if s.Daily != "2026-10-18" {
			t.Errorf("daily = %q", s.Daily)
		}
		if n := len(s.Engine.History()); n != 1 {
			t.Errorf("history = %d, want 1", n)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("View: %v", err)
	}

	boom := errors.New("boom")
	if err := st.Update(ctx, id, func(*Session) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("Update err = %v, want callback error", err)
	}
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	noop := func(*Session) error { return nil }
	if err := st.View(ctx, "nope", noop); !errors.Is(err, ErrNotFound) {
		t.Errorf("View err = %v", err)
	}
	if err := st.Update(ctx, "nope", noop); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update err = %v", err)
	}
	if err := st.Delete(ctx, "nope"); err != nil {
		t.Errorf("Delete err = %v", err)
	}
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	for i := 0; i < 3; i++ {
		if _, err := st.Create(ctx, newEngine(t), ""); err != nil {
			t.Fatal(err)
		}
	}
	if n := st.Sweep(ctx, time.Now().Add(-time.Hour)); n != 0 {
		t.Errorf("swept %d fresh sessions", n)
	}
	if n := st.Sweep(ctx, time.Now().Add(time.Hour)); n != 3 {
		t.Errorf("swept %d, want 3", n)
	}
	if st.Len() != 0 {
		t.Errorf("Len = %d after sweep", st.Len())
	}
}

func TestConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	id, err := st.Create(ctx, newEngine(t), "")
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Update(ctx, id, func(s *Session) error {
				s.Engine.AppendLetter('T')
				s.Engine.DeleteLastLetter()
				return nil
			})
		}()
	}
	wg.Wait()

	_ = st.View(ctx, id, func(s *Session) error {
		if got := s.Engine.InProgress(); got != "" {
			t.Errorf("in progress = %q, want empty", got)
		}
		return nil
	})
}
