// service/main_test.go
package service

import (
	"os"
	"testing"
	"time"

	"answerly/config"
	"answerly/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	config.AppConfig.JWT.AccessSecret = "test-access-secret"
	config.AppConfig.JWT.RefreshSecret = "test-refresh-secret"
	config.AppConfig.JWT.AccessTTL = 10 * time.Second
	config.AppConfig.JWT.RefreshTTL = 7 * 24 * time.Hour

	os.Exit(m.Run())
}
