package main

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"
)

// asynqServer wraps asynq.Server with graceful shutdown.
type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(cfg *Config, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		asynq.Config{
			Queues: map[string]int{
				"high":    20,
				"default": 10,
				"low":     5,
			},
			Concurrency: 20,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq] task failed - type: %s, error: %v", task.Type(), err)
			}),
		},
	)

	go func() {
		log.Println("[Worker] starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] failed: %v", err)
		}
	}()

	return &asynqServer{Server: srv}
}

// Shutdown stops the server, waiting at most 30s for in-flight tasks.
func (s *asynqServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Println("[Worker] shutting down (waiting max 30s)...")
	s.Server.Shutdown()

	<-ctx.Done()
	if ctx.Err() == context.DeadlineExceeded {
		log.Println("[Worker] shutdown timeout exceeded")
	} else {
		log.Println("[Worker] gracefully stopped")
	}
}
