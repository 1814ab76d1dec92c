package services

import (
	"github.com/rs/zerolog/log"
)

// Notification event types emitted after attendance state changes.
const (
	EventEntryConfirmed   = "entry_confirmed"
	EventEntryUnconfirmed = "entry_unconfirmed"
	EventEntryExcused     = "entry_excused"
	EventEntryAbsent      = "entry_absent"
	EventRecordConfirmAll = "record_confirm_all"
	EventRecordSubmitted  = "record_submitted"
	EventRecordApproved   = "record_approved"
	EventRecordRejected   = "record_rejected"
)

// NotificationEvent describes a state change worth telling the affected
// person about (email, push, etc. depending on the dispatcher).
type NotificationEvent struct {
	Type      string `json:"type"`
	PersonID  int64  `json:"person_id"`
	RecordID  int64  `json:"record_id"`
	Day       int    `json:"day,omitempty"`
	ActorName string `json:"actor_name,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// Notifier dispatches notifications after attendance state changes.
// Dispatch is best-effort: a failing dispatcher must never roll back or
// block the state change that triggered it, so callers log and discard
// any returned error.
type Notifier interface {
	Notify(event NotificationEvent) error
}

// logNotifier is the default Notifier: it writes the event to the
// structured log. An outbound email/push dispatcher can replace it without
// touching the services.
type logNotifier struct{}

// NewLogNotifier creates a Notifier that logs events instead of sending them.
func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) Notify(event NotificationEvent) error {
	log.Info().
		Str("event", event.Type).
		Int64("person_id", event.PersonID).
		Int64("record_id", event.RecordID).
		Int("day", event.Day).
		Str("actor", event.ActorName).
		Str("detail", event.Detail).
		Msg("Notification dispatched")
	return nil
}
