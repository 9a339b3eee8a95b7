package main

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

// TestMain loads .env the way main does, so RESUME_MATCHER_* settings apply to
// in-process command runs. Tests that depend on a value pin it with t.Setenv.
func TestMain(m *testing.M) {
	_ = godotenv.Load()
	os.Exit(m.Run())
}
