package main

import (
	"log"
	"strings"

	"trustboard-backend/internal/shared/utils"
)

// Config holds the worker-local configuration. Everything else comes from
// the shared container.
type Config struct {
	RedisAddr       string
	SMTPHost        string
	SMTPPort        string
	SMTPFrom        string
	AlertRecipients []string
}

func loadConfig() *Config {
	cfg := &Config{
		RedisAddr: utils.GetEnvVariable("REDIS_HOST", "localhost:6379"),
		SMTPHost:  utils.GetEnvVariable("SMTP_HOST", "localhost"),
		SMTPPort:  utils.GetEnvVariable("SMTP_PORT", "1025"),
		SMTPFrom:  utils.GetEnvVariable("SMTP_FROM", "alerts@trustboard.io"),
	}

	if raw := utils.GetEnvVariable("ALERT_RECIPIENTS", ""); raw != "" {
		for _, addr := range strings.Split(raw, ",") {
			if addr = strings.TrimSpace(addr); addr != "" {
				cfg.AlertRecipients = append(cfg.AlertRecipients, addr)
			}
		}
	}

	log.Printf("[Config] redis: %s, smtp: %s:%s, alert recipients: %d",
		cfg.RedisAddr, cfg.SMTPHost, cfg.SMTPPort, len(cfg.AlertRecipients))

	return cfg
}
