package integration

import (
	"os"
	"testing"
	"time"
)

// BaseURL points at a running api instance; override with TEST_BASE_URL.
var BaseURL = "http://localhost:8080"

// AdminAddress must match the ADMIN_ADDRESS the api was started with.
var AdminAddress = "0xadmin"

func TestMain(m *testing.M) {
	if url := os.Getenv("TEST_BASE_URL"); url != "" {
		BaseURL = url
	}
	if admin := os.Getenv("TEST_ADMIN_ADDRESS"); admin != "" {
		AdminAddress = admin
	}

	// Wait for the api to come up
	time.Sleep(5 * time.Second)

	os.Exit(m.Run())
}
