// repository/main_test.go
package repository

import (
	"os"
	"testing"

	"answerly/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}
