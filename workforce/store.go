/*
store.go - the Workforce Store (spec §4.C).

Grounded on the teacher's generic/store.go + generic/store/memory.go:
an append-only ledger keyed by entity (here, consultant), binary-search
insertion to keep each consultant's history ordered by start date
without an O(n log n) re-sort on every write, and a hard rejection of
any write that would violate the ledger's structural invariant — the
teacher rejects duplicate idempotency keys, this rejects non-gapless or
overlapping title history.
*/
package workforce

import (
	"sort"
	"sync"

	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/config"
	"github.com/FX93Y2/ConsultFirmDBMockup/simerr"
)

// Store is the in-memory consultant roster and title-history ledger.
// It is append-mostly: the only mutations allowed on an existing entry are
// setting its End date when it transitions from open to closed and, in
// TerminateOpenEntry, reclassifying its Event at the same moment.
type Store struct {
	mu           sync.RWMutex
	consultants  map[string]*Consultant
	order        []string // consultant ids in insertion order, for stable iteration
	history      map[string][]TitleHistoryEntry
}

func NewStore() *Store {
	return &Store{
		consultants: make(map[string]*Consultant),
		history:     make(map[string][]TitleHistoryEntry),
	}
}

// AddConsultant appends a new consultant to the roster.
func (s *Store) AddConsultant(c Consultant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := c
	s.consultants[c.ID] = &cp
	s.order = append(s.order, c.ID)
}

// Consultant returns the consultant by id, or nil if not found.
func (s *Store) Consultant(id string) *Consultant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.consultants[id]
}

// AllConsultants returns every consultant ever created, in hire order.
func (s *Store) AllConsultants() []*Consultant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Consultant, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.consultants[id])
	}
	return out
}

// AddTitleEntry appends a TitleHistoryEntry. Rejected with
// ErrBadHistoryWrite if it would break the gapless, non-overlapping,
// single-open-entry invariant (spec §3).
func (s *Store) AddTitleEntry(e TitleHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.history[e.ConsultantID]
	if len(h) > 0 {
		last := h[len(h)-1]
		if last.IsOpen() {
			return &simerr.BadHistoryWrite{ConsultantID: e.ConsultantID, Detail: "previous entry is still open; close it before appending"}
		}
		if last.Event.IsTerminal() {
			return &simerr.BadHistoryWrite{ConsultantID: e.ConsultantID, Detail: "consultant history already has a terminal entry"}
		}
		if e.Start.Before(*last.End) {
			return &simerr.BadHistoryWrite{ConsultantID: e.ConsultantID, Detail: "new entry starts before previous entry ends (overlap)"}
		}
		if calendar.DaysBetween(*last.End, e.Start) != 1 {
			return &simerr.BadHistoryWrite{ConsultantID: e.ConsultantID, Detail: "new entry does not start the day after the previous entry ends (gap)"}
		}
	} else if e.Event != EventHire {
		return &simerr.BadHistoryWrite{ConsultantID: e.ConsultantID, Detail: "first entry must be a Hire event"}
	}

	// Binary search insertion point by Start, mirroring the teacher's
	// memory store (sort.Search + shift) rather than append+sort.
	i := sort.Search(len(h), func(i int) bool { return h[i].Start.After(e.Start) })
	h = append(h, TitleHistoryEntry{})
	copy(h[i+1:], h[i:])
	h[i] = e
	s.history[e.ConsultantID] = h

	if e.IsOpen() {
		if c := s.consultants[e.ConsultantID]; c != nil {
			c.Metadata.CurrentTitleID = e.TitleID
		}
	}
	return nil
}

// CloseOpenEntry sets the End date on the consultant's current open
// entry. Must be called before AddTitleEntry appends the next row.
func (s *Store) CloseOpenEntry(consultantID string, end calendar.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.history[consultantID]
	if len(h) == 0 || !h[len(h)-1].IsOpen() {
		return &simerr.BadHistoryWrite{ConsultantID: consultantID, Detail: "no open entry to close"}
	}
	if end.Before(h[len(h)-1].Start) {
		return &simerr.BadHistoryWrite{ConsultantID: consultantID, Detail: "end date precedes entry start"}
	}
	e := end
	h[len(h)-1].End = &e
	return nil
}

// TerminateOpenEntry closes the consultant's current open entry at end
// and reclassifies its Event to kind in place, rather than appending a
// new entry. Used when a termination occurs within the same window the
// open entry already started in, so the entry itself becomes the
// Attrition/Layoff record instead of the Hire/Promotion it began as.
func (s *Store) TerminateOpenEntry(consultantID string, end calendar.Day, kind EventKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.history[consultantID]
	if len(h) == 0 || !h[len(h)-1].IsOpen() {
		return &simerr.BadHistoryWrite{ConsultantID: consultantID, Detail: "no open entry to terminate"}
	}
	if end.Before(h[len(h)-1].Start) {
		return &simerr.BadHistoryWrite{ConsultantID: consultantID, Detail: "end date precedes entry start"}
	}
	e := end
	h[len(h)-1].End = &e
	h[len(h)-1].Event = kind
	return nil
}

// OpenEntryOn returns the entry whose window contains date, whether that
// entry is still open or already closed, or nil if no entry covers that day.
func (s *Store) OpenEntryOn(consultantID string, date calendar.Day) *TitleHistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h := s.history[consultantID]
	for i := len(h) - 1; i >= 0; i-- {
		if !h[i].Contains(date) {
			if h[i].End != nil && date.After(*h[i].End) {
				return nil
			}
			continue
		}
		return &h[i]
	}
	return nil
}

// History returns the full, ordered title history for a consultant.
func (s *Store) History(consultantID string) []TitleHistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h := s.history[consultantID]
	out := make([]TitleHistoryEntry, len(h))
	copy(out, h)
	return out
}

// ConsultantsEmployedOn returns every consultant whose title history has
// an entry open on date and whose latest event is not terminal.
func (s *Store) ConsultantsEmployedOn(date calendar.Day) []*Consultant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Consultant
	for _, id := range s.order {
		h := s.history[id]
		if len(h) == 0 {
			continue
		}
		last := h[len(h)-1]
		if last.Event.IsTerminal() {
			continue
		}
		for _, e := range h {
			if e.Contains(date) {
				out = append(out, s.consultants[id])
				break
			}
		}
	}
	return out
}

// LatestTitleID returns the title id from the open entry on date, or 0
// if the consultant is not employed that day.
func (s *Store) LatestTitleID(consultantID string, date calendar.Day) config.TitleID {
	e := s.OpenEntryOn(consultantID, date)
	if e == nil {
		return 0
	}
	return e.TitleID
}

// IsEmployed reports whether any of the consultant's title-history
// entries covers date; a terminal entry's window counts as covered.
func (s *Store) IsEmployed(consultantID string, date calendar.Day) bool {
	return s.OpenEntryOn(consultantID, date) != nil
}

// SetActiveProjectCount updates a consultant's mutable
// ActiveProjectCount metadata field (spec DESIGN NOTES: typed struct
// field, not a re-queried document). Used by the State Advancer's
// year-boundary consistency check.
func (s *Store) SetActiveProjectCount(consultantID string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.consultants[consultantID]; c != nil {
		c.Metadata.ActiveProjectCount = n
	}
}

// SetMostRecentAssignment updates a consultant's
// MostRecentAssignmentAt metadata field.
func (s *Store) SetMostRecentAssignment(consultantID string, date calendar.Day) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.consultants[consultantID]; c != nil {
		d := date
		c.Metadata.MostRecentAssignmentAt = &d
	}
}
