// Package testutils holds helpers shared by package tests.
package testutils

import (
	"os"
	"testing"
)

// SetEnv sets environment variables and returns a function restoring the
// previous values.
func SetEnv(t *testing.T, env map[string]string) func() {
	t.Helper()

	type prev struct {
		value string
		ok    bool
	}
	saved := make(map[string]prev, len(env))
	for k, v := range env {
		old, ok := os.LookupEnv(k)
		saved[k] = prev{value: old, ok: ok}
		if err := os.Setenv(k, v); err != nil {
			t.Fatalf("failed to set %s: %v", k, err)
		}
	}

	return func() {
		for k, p := range saved {
			if p.ok {
				_ = os.Setenv(k, p.value)
			} else {
				_ = os.Unsetenv(k)
			}
		}
	}
}

// UnsetEnv removes variables for the duration of the test
func UnsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		old, ok := os.LookupEnv(k)
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("failed to unset %s: %v", k, err)
		}
		if ok {
			t.Cleanup(func() { _ = os.Setenv(k, old) })
		}
	}
}
