//go:build pact
// +build pact

// Package pacttest holds shared names and paths for the payment
// gateway contract tests.
package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ConsumerName = "storefront-api"
	ProviderName = "stripe-checkout"

	StateCheckoutBase  = "checkout sessions baseline"
	StateSessionExists = "a checkout session exists for payment intent pi_pact_1"
	StateIntentMissing = "no checkout session for payment intent pi_pact_404"
)

const (
	ExistingIntentID = "pi_pact_1"
	MissingIntentID  = "pi_pact_404"
	ExampleOrderID   = "order-pact-1"
	ExampleUserID    = "user-pact-1"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
