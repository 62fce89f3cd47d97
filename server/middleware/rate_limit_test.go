package middleware

import (
	"testing"

	"golang.org/x/time/rate"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 2)

	if !rl.Allow("client-a") {
		t.Fatal("first request should be allowed")
	}
	if !rl.Allow("client-a") {
		t.Fatal("second request within burst should be allowed")
	}
	if rl.Allow("client-a") {
		t.Fatal("third request should exceed the burst")
	}

	// Keys are independent.
	if !rl.Allow("client-b") {
		t.Fatal("a different key should have its own budget")
	}
}
