// Package exitcode provides semantic exit codes for CI/CD integration.
// Exit codes communicate scan outcomes to automation pipelines.
//
// Exit codes:
//   - 0: Pass (no fail-severity matches)
//   - 1: Policy violations detected
//   - 2: Setup error (unreadable root, malformed rule set)
package exitcode

import (
	"fmt"
	"sync"
)

// Code represents a semantic exit code for CI/CD pipelines.
type Code int

const (
	// Pass indicates the scan completed with no fail-severity matches.
	Pass Code = 0
	// Violations indicates one or more fail-severity matches.
	Violations Code = 1
	// Setup indicates the run aborted before scanning: unreadable root
	// or malformed rule set.
	Setup Code = 2
)

// codeStrings maps exit codes to short machine-readable names.
var codeStrings = map[Code]string{
	Pass:       "pass",
	Violations: "violations_detected",
	Setup:      "setup_error",
}

// codeDescriptions provides detailed descriptions for exit codes.
var codeDescriptions = map[Code]string{
	Pass:       "Scan completed with no policy violations",
	Violations: "One or more policy violations were detected",
	Setup:      "Invalid configuration or unreadable scan root",
}

// Manager tracks scan outcomes and determines the appropriate exit code.
// The mutex lets signal handlers record state concurrently with the scan.
type Manager struct {
	mu         sync.Mutex
	violations int
	notices    int
	setupError bool
}

// New creates a new exit code manager.
func New() *Manager {
	return &Manager{}
}

// RecordViolation increments the fail-severity match counter.
func (m *Manager) RecordViolation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.violations++
}

// RecordNotice increments the notice counter. Notices never affect the
// exit code; they are tracked only for the summary line.
func (m *Manager) RecordNotice() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices++
}

// SetSetupError marks that the run failed before scanning.
func (m *Manager) SetSetupError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setupError = true
}

// ExitCode returns the appropriate exit code based on recorded outcomes,
// with a human-readable reason.
//
// Priority order (highest to lowest):
//  1. Setup error
//  2. Violations detected
//  3. Pass
func (m *Manager) ExitCode() (Code, string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.setupError {
		return Setup, codeDescriptions[Setup]
	}
	if m.violations > 0 {
		return Violations, fmt.Sprintf("%s (count: %d)",
			codeDescriptions[Violations], m.violations)
	}
	return Pass, codeDescriptions[Pass]
}

// Stats returns the current violation and notice counts.
func (m *Manager) Stats() (violations, notices int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.violations, m.notices
}

// Reset clears all recorded outcomes.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.violations = 0
	m.notices = 0
	m.setupError = false
}

// CodeString returns the short name of an exit code.
func CodeString(code Code) string {
	if s, ok := codeStrings[code]; ok {
		return s
	}
	return fmt.Sprintf("unknown_code_%d", code)
}

// CodeDescription returns a detailed description of an exit code.
func CodeDescription(code Code) string {
	if s, ok := codeDescriptions[code]; ok {
		return s
	}
	return fmt.Sprintf("Unknown exit code: %d", code)
}
