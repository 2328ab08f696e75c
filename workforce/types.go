/*
Package workforce owns the Consultant and TitleHistoryEntry data model
(spec §3) and the yearly Workforce Simulator (spec §4.D). It is the
direct analogue of the teacher's timeoff package: where timeoff
specializes the generic ledger/policy engine to PTO balances, workforce
specializes the same append-only-ledger-plus-derived-state shape to a
consultant's employment history. A TitleHistoryEntry plays the role the
teacher's generic.Transaction plays: an immutable, chronologically
ordered ledger row; the "open entry" is this domain's analogue of an
unreconciled balance.
*/
package workforce

import (
	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/config"
	"github.com/FX93Y2/ConsultFirmDBMockup/money"
)

// EventKind is the reason a TitleHistoryEntry was opened.
type EventKind string

const (
	EventHire         EventKind = "hire"
	EventPromotion    EventKind = "promotion"
	EventContinuation EventKind = "continuation"
	EventAttrition    EventKind = "attrition"
	EventLayoff       EventKind = "layoff"
)

// IsTerminal reports whether this event kind ends a consultant's
// employment (spec §3: Attrition and Layoff entries are terminal).
func (k EventKind) IsTerminal() bool {
	return k == EventAttrition || k == EventLayoff
}

// TitleHistoryEntry is one append-only ledger row in a consultant's title
// history. After insertion only End (and, on termination, Event) changes.
type TitleHistoryEntry struct {
	ConsultantID string
	TitleID      config.TitleID
	Start        calendar.Day
	End          *calendar.Day // nil = open (consultant currently holds this title)
	Event        EventKind
	Salary       money.Amount // integer currency units at the time of this entry
}

// IsOpen reports whether this entry has no end date yet.
func (e TitleHistoryEntry) IsOpen() bool { return e.End == nil }

// Contains reports whether day falls within [Start, End] (End treated as
// unbounded when nil).
func (e TitleHistoryEntry) Contains(day calendar.Day) bool {
	if day.Before(e.Start) {
		return false
	}
	if e.End != nil && day.After(*e.End) {
		return false
	}
	return true
}

// ConsultantMetadata is the mutable per-consultant simulation state.
// Per DESIGN NOTES, this is a typed field on the in-memory struct rather
// than a serialized side document; only the final flush touches storage.
type ConsultantMetadata struct {
	CurrentTitleID         config.TitleID
	ActiveProjectCount     int
	MostRecentAssignmentAt *calendar.Day
}

// Consultant is a simulated employee. Created once by the Workforce
// Simulator, never destroyed: attrition and layoff are recorded as
// terminal TitleHistoryEntry rows, not deletions.
type Consultant struct {
	ID             string
	GivenName      string
	FamilyName     string
	Email          string
	Phone          string
	BusinessUnitID int
	HireYear       int
	Metadata       ConsultantMetadata
}

func (c Consultant) FullName() string { return c.GivenName + " " + c.FamilyName }

// PayrollRecord is one monthly payroll posting, derived at the end of
// the simulation from title history (spec §3).
type PayrollRecord struct {
	ConsultantID string
	Amount       money.Amount
	EffectiveAt  calendar.Day
}

// YearSummary is the per-year structured summary the simulator returns
// instead of raising exceptions for non-fatal conditions (spec §7).
type YearSummary struct {
	Year        int
	Hires       int
	Promotions  int
	Attritions  int
	Layoffs     int
	Continuations int
	HeadcountEnd int
}
