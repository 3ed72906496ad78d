package vtcore

import "testing"

func TestWorkingDirectoryBasic(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("\x1b]7;file://localhost/home/user\x07")

	if got := term.WorkingDirectory(); got != "file://localhost/home/user" {
		t.Errorf("expected 'file://localhost/home/user', got %q", got)
	}
}

func TestWorkingDirectorySTTerminator(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("\x1b]7;file://myhost/var/log\x1b\\")

	if got := term.WorkingDirectory(); got != "file://myhost/var/log" {
		t.Errorf("expected 'file://myhost/var/log', got %q", got)
	}
}

func TestWorkingDirectoryMultiple(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]7;file://localhost/home/user\x07")
	if got := term.WorkingDirectory(); got != "file://localhost/home/user" {
		t.Errorf("expected file://localhost/home/user, got %q", got)
	}

	term.WriteString("\x1b]7;file://localhost/tmp\x07")
	if got := term.WorkingDirectory(); got != "file://localhost/tmp" {
		t.Errorf("expected file://localhost/tmp, got %q", got)
	}
}

func TestWorkingDirectoryNotSet(t *testing.T) {
	term := New(WithSize(24, 80))
	if got := term.WorkingDirectory(); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestWorkingDirectoryPathBasic(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("\x1b]7;file://localhost/home/user\x07")

	if got := term.WorkingDirectoryPath(); got != "/home/user" {
		t.Errorf("expected '/home/user', got %q", got)
	}
}

func TestWorkingDirectoryPathWithHostname(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("\x1b]7;file://mycomputer.local/var/log/system\x07")

	if got := term.WorkingDirectoryPath(); got != "/var/log/system" {
		t.Errorf("expected '/var/log/system', got %q", got)
	}
}

func TestWorkingDirectoryPathEmptyHostname(t *testing.T) {
	term := New(WithSize(24, 80))
	term.WriteString("\x1b]7;file:///home/user\x07")

	if got := term.WorkingDirectoryPath(); got != "/home/user" {
		t.Errorf("expected '/home/user', got %q", got)
	}
}

func TestWorkingDirectoryPathNotSet(t *testing.T) {
	term := New(WithSize(24, 80))
	if got := term.WorkingDirectoryPath(); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}
