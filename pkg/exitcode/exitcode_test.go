package exitcode

import (
	"sync"
	"testing"
)

func TestExitCodePriority(t *testing.T) {
	tests := []struct {
		name       string
		violations int
		notices    int
		setupErr   bool
		want       Code
	}{
		{"clean run", 0, 0, false, Pass},
		{"notices only", 0, 5, false, Pass},
		{"violations", 3, 0, false, Violations},
		{"violations and notices", 3, 2, false, Violations},
		{"setup error wins", 3, 2, true, Setup},
		{"setup error alone", 0, 0, true, Setup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			for i := 0; i < tt.violations; i++ {
				m.RecordViolation()
			}
			for i := 0; i < tt.notices; i++ {
				m.RecordNotice()
			}
			if tt.setupErr {
				m.SetSetupError()
			}

			code, reason := m.ExitCode()
			if code != tt.want {
				t.Errorf("ExitCode() = %d, want %d", code, tt.want)
			}
			if reason == "" {
				t.Error("reason must not be empty")
			}
		})
	}
}

func TestStatsAndReset(t *testing.T) {
	m := New()
	m.RecordViolation()
	m.RecordViolation()
	m.RecordNotice()

	violations, notices := m.Stats()
	if violations != 2 || notices != 1 {
		t.Errorf("Stats() = (%d, %d), want (2, 1)", violations, notices)
	}

	m.Reset()
	violations, notices = m.Stats()
	if violations != 0 || notices != 0 {
		t.Errorf("Stats() after Reset = (%d, %d), want (0, 0)", violations, notices)
	}
	if code, _ := m.ExitCode(); code != Pass {
		t.Errorf("ExitCode() after Reset = %d, want Pass", code)
	}
}

func TestConcurrentRecording(t *testing.T) {
	m := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordViolation()
			m.RecordNotice()
		}()
	}
	wg.Wait()

	violations, notices := m.Stats()
	if violations != 50 || notices != 50 {
		t.Errorf("Stats() = (%d, %d), want (50, 50)", violations, notices)
	}
}

func TestCodeStrings(t *testing.T) {
	tests := []struct {
		code     Code
		wantName string
	}{
		{Pass, "pass"},
		{Violations, "violations_detected"},
		{Setup, "setup_error"},
		{Code(9), "unknown_code_9"},
	}
	for _, tt := range tests {
		if got := CodeString(tt.code); got != tt.wantName {
			t.Errorf("CodeString(%d) = %q, want %q", tt.code, got, tt.wantName)
		}
		if CodeDescription(tt.code) == "" {
			t.Errorf("CodeDescription(%d) is empty", tt.code)
		}
	}
}
