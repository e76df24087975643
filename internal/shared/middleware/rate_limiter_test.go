package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

func newLimitedApp(rl *RateLimiter) *fiber.App {
	app := fiber.New()
	app.Use(rl.Handler())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestRateLimiterRejectsAfterBurst(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2}, nil)
	app := newLimitedApp(rl)

	wantStatus := []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests}
	for i, want := range wantStatus {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if resp.StatusCode != want {
			t.Fatalf("request %d: expected %d, got %d", i, want, resp.StatusCode)
		}
		if resp.Header.Get("X-RateLimit-Limit") != "2" {
			t.Fatalf("request %d: expected limit header 2, got %q", i, resp.Header.Get("X-RateLimit-Limit"))
		}
	}
}

func TestRateLimiterCleanupDropsIdleEntries(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1, EntryTTL: time.Minute}, nil)
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	now = now.Add(30 * time.Second)
	rl.getLimiter("10.0.0.2")
	now = now.Add(45 * time.Second)

	rl.cleanup()

	if got := rl.ActiveClients(); got != 1 {
		t.Fatalf("expected 1 active client after cleanup, got %d", got)
	}
	if _, ok := rl.limiters["10.0.0.2"]; !ok {
		t.Fatalf("expected the recent client to survive cleanup")
	}
}
