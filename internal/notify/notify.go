// Package notify sends desktop notifications when watch mode regenerates
// the feed, so a developer working in another window sees the result of
// each commit without tailing the terminal.
package notify

// Type classifies a notification event.
type Type string

const (
	// TypeSuccess indicates a regeneration completed.
	TypeSuccess Type = "success"
	// TypeFailure indicates a regeneration failed.
	TypeFailure Type = "failure"
)

// Notification is a single event to dispatch to the OS.
type Notification struct {
	// Title is the notification title (e.g., "updatefeed").
	Title string
	// Message is the notification body text.
	Message string
	// Type indicates the event type.
	Type Type
}

// New creates a Notification.
func New(title, message string, t Type) Notification {
	return Notification{Title: title, Message: message, Type: t}
}
