package ui

import (
	"os"
	"runtime"
	"sync"

	"golang.org/x/term"
)

var (
	unicodeOnce sync.Once
	unicodeOK   bool
)

// UnicodeTerminal reports whether stdout can render Unicode glyphs.
// Returns false when output is piped, redirected, TERM is "dumb", or on
// Windows without Windows Terminal.
//
// On Windows, legacy consoles cannot render the check/cross glyphs even
// with SetConsoleOutputCP(65001) because the default fonts lack them.
// Windows Terminal (detected via WT_SESSION) handles them correctly.
func UnicodeTerminal() bool {
	unicodeOnce.Do(func() {
		if os.Getenv("TERM") == "dumb" {
			return
		}
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return
		}
		if runtime.GOOS == "windows" {
			unicodeOK = os.Getenv("WT_SESSION") != ""
			return
		}
		unicodeOK = true
	})
	return unicodeOK
}

// Icon returns unicode when the terminal supports it, ascii otherwise.
// Use at every call site that renders special characters:
// ui.Icon("✔", "[OK]")
func Icon(unicode, ascii string) string {
	if UnicodeTerminal() {
		return unicode
	}
	return ascii
}

// IsTTY reports whether stdout is attached to a terminal. Writers use
// this to pick plain output when piped into CI logs.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
