package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_WindowResets(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	l := New(2, time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests should pass")
	}
	if l.Allow("a") {
		t.Fatal("third request should be limited")
	}
	if !l.Allow("b") {
		t.Fatal("other keys are independent")
	}
	if got := l.Remaining("a"); got != 0 {
		t.Errorf("Remaining: got %d, want 0", got)
	}

	now = now.Add(61 * time.Second)
	if got := l.Remaining("a"); got != 2 {
		t.Errorf("Remaining after expiry: got %d, want 2", got)
	}
	if !l.Allow("a") {
		t.Fatal("a new window should allow requests again")
	}
}

func TestLimiter_SweepDropsExpired(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	l := New(1, time.Minute)
	l.now = func() time.Time { return now }

	l.Allow("old")
	now = now.Add(3 * time.Minute)
	l.Allow("new")

	if _, ok := l.windows["old"]; ok {
		t.Error("expired window should have been swept")
	}
	if _, ok := l.windows["new"]; !ok {
		t.Error("fresh window should remain")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "10.0.0.1:5555", "10.0.0.1"},
		{"remote without port", nil, "10.0.0.1", "10.0.0.1"},
		{"forwarded first hop", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.2"}, "10.0.0.1:1", "203.0.113.9"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.7 "}, "10.0.0.1:1", "198.51.100.7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/login", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginLimiter(t *testing.T) {
	ll := NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)
	r := httptest.NewRequest("POST", "/login", nil)

	for i := 0; i < 2; i++ {
		if ok, _ := ll.Check(r, "emp001"); !ok {
			t.Fatalf("attempt %d should pass", i+1)
		}
	}
	ok, msg := ll.Check(r, " EMP001 ")
	if ok || msg != TooManyForAccount {
		t.Fatalf("got %v %q, want account limit", ok, msg)
	}

	ll.ResetAccount("Emp001")
	if ok, _ := ll.Check(r, "EMP001"); !ok {
		t.Fatal("reset should clear the account limit")
	}

	ipOnly := NewLoginLimiterWithConfig(1, time.Minute, 100, time.Minute)
	ipOnly.Check(r, "A")
	if ok, msg := ipOnly.Check(r, "B"); ok || msg != TooManyFromAddress {
		t.Fatalf("got %v %q, want address limit", ok, msg)
	}
}
