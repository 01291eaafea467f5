package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// HealthChecker performs startup health checks.
type HealthChecker struct {
	redisClient *redis.Client
}

// startServices verifies external dependencies and exposes the health
// endpoint. The worker refuses to start without Redis since both the task
// server and the scheduler depend on it.
func startServices(cfg *Config) error {
	log.Println("trustboard worker starting...")

	checker := &HealthChecker{
		redisClient: redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}),
	}

	if err := checker.checkAll(); err != nil {
		return err
	}

	go startHealthCheckServer()

	return nil
}

func (h *HealthChecker) checkAll() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"redis connection", h.checkRedis},
	}

	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Printf("[Startup] %s: ok", check.name)
	}

	return nil
}

func (h *HealthChecker) checkRedis() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return h.redisClient.Ping(ctx).Err()
}

func startHealthCheckServer() {
	http.HandleFunc("/health", healthCheckHandler)
	http.HandleFunc("/ready", readyCheckHandler)

	log.Println("[Health] starting health check server on :9999")
	if err := http.ListenAndServe(":9999", nil); err != nil {
		log.Printf("[Health] failed to start: %v", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"UP","service":"trustboard-worker"}`))
}

// readyCheckHandler serves the Kubernetes readiness probe.
func readyCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"READY"}`))
}
