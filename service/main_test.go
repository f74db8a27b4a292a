package service

import (
	"go-jobs-api/config"
	"go-jobs-api/logger"
	"os"
	"testing"
	"time"
)

// testConfig returns a config with short, deterministic windows so tests
// never depend on a config file on disk.
func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = "test-access-secret"
	cfg.JWT.AccessExpire = 1 * time.Hour
	cfg.JWT.RefreshSecret = "test-refresh-secret"
	cfg.JWT.RefreshExpire = 7 * 24 * time.Hour
	return cfg
}

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}
