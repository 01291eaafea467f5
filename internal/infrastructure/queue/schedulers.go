package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"trustboard-backend/internal/config"
	"trustboard-backend/internal/shared"
	"trustboard-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterJobs() error {
	if err := s.registerCleanupExpiredTokensJob(); err != nil {
		return err
	}

	if err := s.registerRefreshStaleProfilesJob(); err != nil {
		return err
	}

	return nil
}

// Cleanup expired OAuth tokens, daily at 2 AM. Low traffic window; expired
// tokens only pollute the connections listing so once a day is enough.
func (s *Scheduler) registerCleanupExpiredTokensJob() error {
	payload, err := json.Marshal(shared.CleanupExpiredTokensPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupExpiredTokens, payload)

	_, err = s.scheduler.Register(
		"0 2 * * *",
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register CleanupExpiredTokens job", err)
		return err
	}

	logger.Info("Registered CleanupExpiredTokens: daily at 2 AM", map[string]interface{}{})
	return nil
}

// Refresh stale influencer profiles every 6 hours. Profiles count as fresh
// for 24 hours, so four runs a day keeps the whole roster inside the window
// without hammering the platform APIs.
func (s *Scheduler) registerRefreshStaleProfilesJob() error {
	payload, err := json.Marshal(shared.RefreshStaleProfilesPayload{
		Limit: s.jobConfig.RefreshStaleLimit,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeRefreshStaleProfiles, payload)

	_, err = s.scheduler.Register(
		"0 */6 * * *",
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register RefreshStaleProfiles job", err)
		return err
	}

	logger.Info("Registered RefreshStaleProfiles: every 6 hours", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
