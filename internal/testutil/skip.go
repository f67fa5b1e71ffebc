// Package testutil provides testing utilities.
package testutil

import (
	"os"
	"testing"
)

// EnvRunAITests enables tests that call paid model APIs.
const EnvRunAITests = "RUN_AI_TESTS"

// RequireAPIKey skips the test unless AI tests are enabled and the named
// environment variable holds a key, which it returns.
//
// Run AI tests with: RUN_AI_TESTS=1 OPENAI_API_KEY=... go test ./...
func RequireAPIKey(t *testing.T, envVar string) string {
	t.Helper()
	if os.Getenv(EnvRunAITests) == "" {
		t.Skipf("Skipping AI test (set %s=1 to run)", EnvRunAITests)
	}
	key := os.Getenv(envVar)
	if key == "" {
		t.Skipf("%s not set", envVar)
	}
	return key
}
