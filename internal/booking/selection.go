package booking

import "time"

// User roles as reported by the backend session endpoint.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Selection is the grid cell the user currently has chosen. It lives only
// between the cell click and the confirm dialog closing, and Date is the
// exact string the snapshot was fetched with.
type Selection struct {
	RoomID string
	SlotID string
	Date   string
}

// Request is the self-booking reservation payload.
type Request struct {
	RoomID              string    `json:"roomId"`
	StartAt             time.Time `json:"startAt"`
	EndAt               time.Time `json:"endAt"`
	AddToGoogleCalendar bool      `json:"addToGoogleCalendar"`
}

// OnBehalfRequest is the administrator variant. There is no calendar flag on
// this path; the field does not exist rather than being sent as false.
type OnBehalfRequest struct {
	RoomID      string    `json:"roomId"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	OthersEmail string    `json:"othersEmail"`
}

// BuildRequest translates a selection into a reservation payload using the
// snapshot that made the cell appear available. The selection must still
// resolve in that snapshot and the cell must still be free; otherwise the
// caller gets a StaleSelectionError and must prompt a re-select.
func BuildRequest(snap *Snapshot, sel Selection, loc *time.Location, addToCalendar bool) (Request, error) {
	start, end, err := selectionTimes(snap, sel, loc)
	if err != nil {
		return Request{}, err
	}
	return Request{
		RoomID:              sel.RoomID,
		StartAt:             start,
		EndAt:               end,
		AddToGoogleCalendar: addToCalendar,
	}, nil
}

// BuildOnBehalfRequest builds the administrator-only payload. The acting
// user's role is passed in explicitly; nothing is read from ambient state.
func BuildOnBehalfRequest(snap *Snapshot, sel Selection, loc *time.Location, role, othersEmail string) (OnBehalfRequest, error) {
	if role != RoleAdmin {
		return OnBehalfRequest{}, &ValidationError{Field: "role", Reason: "on-behalf booking requires an administrator"}
	}
	if othersEmail == "" {
		return OnBehalfRequest{}, &ValidationError{Field: "othersEmail", Reason: "required"}
	}
	start, end, err := selectionTimes(snap, sel, loc)
	if err != nil {
		return OnBehalfRequest{}, err
	}
	return OnBehalfRequest{
		RoomID:      sel.RoomID,
		StartAt:     start,
		EndAt:       end,
		OthersEmail: othersEmail,
	}, nil
}

func selectionTimes(snap *Snapshot, sel Selection, loc *time.Location) (time.Time, time.Time, error) {
	stale := &StaleSelectionError{RoomID: sel.RoomID, SlotID: sel.SlotID, Date: sel.Date}
	if snap == nil || snap.Date != sel.Date {
		return time.Time{}, time.Time{}, stale
	}
	if _, ok := snap.Room(sel.RoomID); !ok {
		return time.Time{}, time.Time{}, stale
	}
	slot, ok := snap.Slot(sel.SlotID)
	if !ok || !snap.IsAvailable(sel.RoomID, sel.SlotID) {
		return time.Time{}, time.Time{}, stale
	}
	start, err := atClock(sel.Date, slot.Start, loc)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Field: "slot", Reason: err.Error()}
	}
	end, err := atClock(sel.Date, slot.End, loc)
	if err != nil {
		return time.Time{}, time.Time{}, &ValidationError{Field: "slot", Reason: err.Error()}
	}
	return start, end, nil
}

// atClock composes an absolute timestamp from the snapshot's own date string
// and a slot clock time, in the caller's time zone. The date is never
// recomputed from "now", so a submission that crosses midnight cannot drift
// onto the next day.
func atClock(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02T15:04", date+"T"+clock, loc)
}

// OriginalReservation identifies the reservation being edited: the room it
// occupies and the local date it currently sits on.
type OriginalReservation struct {
	RoomID string
	Date   string
}

// SelectableForEdit reports whether a cell may be offered while editing an
// existing reservation. The reservation's own room on its own date is always
// selectable even when the matrix marks it occupied, because that occupancy
// is the edited reservation itself. Changing either the room or the date
// drops the relaxation and ordinary availability applies.
func SelectableForEdit(snap *Snapshot, roomID, slotID string, orig OriginalReservation) bool {
	if snap.IsAvailable(roomID, slotID) {
		return true
	}
	return roomID == orig.RoomID && snap.Date == orig.Date
}
