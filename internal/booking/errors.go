package booking

import "fmt"

// ValidationError reports input that fails a local check before any request
// is issued.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StaleSelectionError reports that a selection no longer resolves against the
// active snapshot, usually because the snapshot refreshed between the click
// and the confirmation. The user has to re-select; the request is never sent.
type StaleSelectionError struct {
	RoomID string
	SlotID string
	Date   string
}

func (e *StaleSelectionError) Error() string {
	return fmt.Sprintf("selection room=%s slot=%s is no longer available on %s", e.RoomID, e.SlotID, e.Date)
}
