package cart

import "testing"

func TestStoreReturnsSameCartPerSession(t *testing.T) {
	s := NewStore()

	a := s.Get("session-a")
	if got := s.Get("session-a"); got != a {
		t.Error("expected the same cart instance for one session")
	}
	if got := s.Get("session-b"); got == a {
		t.Error("expected distinct carts for distinct sessions")
	}
}

func TestStoreDrop(t *testing.T) {
	s := NewStore()

	a := s.Get("session-a")
	s.Drop("session-a")
	if got := s.Get("session-a"); got == a {
		t.Error("expected a fresh cart after Drop")
	}
}
