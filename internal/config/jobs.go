package config

// JobConfig tunes the scheduled background jobs.
type JobConfig struct {
	// RefreshStaleLimit caps how many stale profiles one refresh run fetches.
	RefreshStaleLimit int
}

func LoadJobConfig() JobConfig {
	return JobConfig{
		RefreshStaleLimit: getEnvInt("JOB_REFRESH_STALE_LIMIT", 50),
	}
}
