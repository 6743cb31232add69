package quiz

import (
	"fmt"
	"sync"
	"testing"
)

func TestStoreGetPutDelete(t *testing.T) {
	s := NewStore()

	if _, ok := s.Get("u1"); ok {
		t.Fatal("expected no session for unknown user")
	}

	s.Put("u1", NewSession())
	sess, ok := s.Get("u1")
	if !ok {
		t.Fatal("expected session after Put")
	}
	if sess.State != StateAwaitingDifficulty {
		t.Fatalf("state = %s", sess.State)
	}

	s.Delete("u1")
	if _, ok := s.Get("u1"); ok {
		t.Fatal("expected no session after Delete")
	}
}

func TestStoreGetReturnsCopy(t *testing.T) {
	s := NewStore()
	orig := NewSession()
	orig.Remaining = []string{"ua", "fr"}
	s.Put("u1", orig)

	got, _ := s.Get("u1")
	got.Remaining[0] = "xx"
	got.Score = 99

	fresh, _ := s.Get("u1")
	if fresh.Remaining[0] != "ua" || fresh.Score != 0 {
		t.Fatal("Get leaked a mutable reference")
	}
}

func TestStoreUpdateSerializesPerKey(t *testing.T) {
	s := NewStore()
	s.Put("u1", NewSession())

	const workers = 16
	const iterations = 100

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				s.Update("u1", func(sess *Session) *Session {
					sess.Score++
					return sess
				})
			}
		}()
	}
	wg.Wait()

	sess, _ := s.Get("u1")
	if sess.Score != workers*iterations {
		t.Fatalf("score = %d, want %d", sess.Score, workers*iterations)
	}
}

func TestStoreUpdateNilDeletes(t *testing.T) {
	s := NewStore()
	s.Put("u1", NewSession())
	s.Update("u1", func(*Session) *Session { return nil })
	if _, ok := s.Get("u1"); ok {
		t.Fatal("expected deletion when fn returns nil")
	}
}

func TestStoreIndependentKeys(t *testing.T) {
	s := NewStore()
	for i := 0; i < 100; i++ {
		id := fmt.Sprintf("user-%d", i)
		s.Update(id, func(sess *Session) *Session {
			if sess != nil {
				t.Errorf("unexpected existing session for %s", id)
			}
			return NewSession()
		})
	}
	for i := 0; i < 100; i++ {
		if _, ok := s.Get(fmt.Sprintf("user-%d", i)); !ok {
			t.Fatalf("missing session for user-%d", i)
		}
	}
}
