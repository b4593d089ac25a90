package notify

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Sender dispatches notifications to the OS notification system.
type Sender interface {
	// Send delivers a visual notification.
	Send(n Notification) error
	// Available returns true if this platform can deliver notifications.
	Available() bool
}

// NewSender creates a platform-specific notification sender based on the
// current OS. Unsupported platforms get a no-op sender.
func NewSender() Sender {
	switch runtime.GOOS {
	case "darwin":
		return &darwinSender{}
	case "linux":
		return &linuxSender{}
	default:
		return &noopSender{}
	}
}

// toolAvailable checks if a command-line tool is available in PATH.
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// darwinSender uses osascript, which ships with macOS.
type darwinSender struct{}

func (s *darwinSender) Available() bool { return toolAvailable("osascript") }

func (s *darwinSender) Send(n Notification) error {
	script := fmt.Sprintf("display notification %q with title %q", n.Message, n.Title)
	return exec.Command("osascript", "-e", script).Run()
}

// linuxSender uses notify-send from libnotify.
type linuxSender struct{}

func (s *linuxSender) Available() bool { return toolAvailable("notify-send") }

func (s *linuxSender) Send(n Notification) error {
	urgency := "normal"
	if n.Type == TypeFailure {
		urgency = "critical"
	}
	return exec.Command("notify-send", "--urgency", urgency, n.Title, n.Message).Run()
}

// noopSender does nothing (for unsupported platforms).
type noopSender struct{}

func (s *noopSender) Send(_ Notification) error { return nil }
func (s *noopSender) Available() bool           { return false }
