// Package notification describes the dismissable per-user messages emitted
// when a submission fails or partially succeeds.
package notification

import "time"

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

const (
	TypeResultSaved     = "result_saved"
	TypeResultNotSaved  = "result_not_saved"
	TypeHistoryNotSaved = "history_not_updated"
)

type Notification struct {
	Type        string    `json:"type"`
	Level       Level     `json:"level"`
	Message     string    `json:"message"`
	ResultID    string    `json:"result_id,omitempty"`
	Dismissable bool      `json:"dismissable"`
	Timestamp   time.Time `json:"timestamp"`
}

// Notifier delivers a notification to every open channel of one user.
type Notifier interface {
	Notify(userID string, n Notification)
}

type Nop struct{}

func (Nop) Notify(string, Notification) {}
