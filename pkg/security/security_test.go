package security

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestVisitorStoreGet(t *testing.T) {
	s := &visitorStore{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Second),
		burst:    2,
	}

	a := s.get("10.0.0.1")
	b := s.get("10.0.0.1")
	if a != b {
		t.Error("same IP should reuse its limiter")
	}
	if c := s.get("10.0.0.2"); c == a {
		t.Error("different IPs should get separate limiters")
	}

	if !a.Allow() || !a.Allow() {
		t.Error("burst of 2 should allow two immediate requests")
	}
	if a.Allow() {
		t.Error("third immediate request should be rejected")
	}
}
