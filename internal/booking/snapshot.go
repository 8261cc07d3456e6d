package booking

import (
	"sort"
	"strconv"
	"strings"
)

type Room struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Capacity  int      `json:"capacity"`
	Floor     int      `json:"floor,omitempty"`
	Equipment []string `json:"equipment,omitempty"`
}

// TimeSlot is one of the fixed daily intervals shared by every room. The ID is
// conventionally "HH:MM-HH:MM" but is treated as an opaque key; ordering comes
// from Start.
type TimeSlot struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type Entry struct {
	RoomID    string `json:"roomId"`
	SlotID    string `json:"slotId"`
	Available bool   `json:"available"`
}

// Snapshot is the full availability dataset for exactly one calendar date.
// It is replaced wholesale whenever the date changes, never merged.
type Snapshot struct {
	Date         string     `json:"-"`
	Rooms        []Room     `json:"rooms"`
	Slots        []TimeSlot `json:"slots"`
	Availability []Entry    `json:"availability"`
}

// IsAvailable reports whether the pair has an explicit available entry.
// A missing pair means not available. Room ids are compared as strings so
// numeric and string producers agree.
func (s *Snapshot) IsAvailable(roomID, slotID string) bool {
	for _, e := range s.Availability {
		if e.RoomID == roomID && e.SlotID == slotID && e.Available {
			return true
		}
	}
	return false
}

// Room returns the snapshot room with the given id.
func (s *Snapshot) Room(id string) (Room, bool) {
	for _, r := range s.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return Room{}, false
}

// Slot returns the snapshot slot with the given id.
func (s *Snapshot) Slot(id string) (TimeSlot, bool) {
	for _, sl := range s.Slots {
		if sl.ID == id {
			return sl, true
		}
	}
	return TimeSlot{}, false
}

// OrderedSlots returns the slots sorted ascending by start-of-day minute.
// The sort is stable so slots whose start cannot be compared keep their
// original relative order.
func (s *Snapshot) OrderedSlots() []TimeSlot {
	out := make([]TimeSlot, len(s.Slots))
	copy(out, s.Slots)
	sort.SliceStable(out, func(i, j int) bool {
		return slotStartMinutes(out[i]) < slotStartMinutes(out[j])
	})
	return out
}

// slotStartMinutes derives the minute-of-day offset used for ordering. Slots
// normally carry an explicit Start; when a producer omits it, the leading time
// token of the id is used instead.
func slotStartMinutes(s TimeSlot) int {
	src := s.Start
	if src == "" {
		src = s.ID
		if i := strings.IndexByte(src, '-'); i > 0 {
			src = src[:i]
		}
	}
	min, ok := parseClock(src)
	if !ok {
		return 0
	}
	return min
}

// parseClock accepts "HH:MM" or a bare "HH".
func parseClock(v string) (int, bool) {
	parts := strings.SplitN(strings.TrimSpace(v), ":", 2)
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m := 0
	if len(parts) == 2 {
		if m, err = strconv.Atoi(parts[1]); err != nil {
			return 0, false
		}
	}
	return h*60 + m, true
}
