/*
capacity.go - the Capacity Oracle (spec §4.F): a derived, read-only view
over the Project Store and a consultant's current title, consulted by
the Project Creator and Daily Work Allocator before ever writing a
ConsultantDeliverable or ProjectTeamAssignment row.
*/
package project

import (
	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/config"
	"github.com/FX93Y2/ConsultFirmDBMockup/money"
)

// CapacityOracle answers capacity questions for a title/day against a
// Project Store, without mutating anything.
type CapacityOracle struct {
	Store  *Store
	Config *config.Config
}

// DailyCap returns MAX_DAILY_HOURS_PER_TITLE for a title.
func (o *CapacityOracle) DailyCap(title config.TitleID) float64 {
	return o.Config.MaxDailyHoursPerTitle[title]
}

// MinPerProject returns MIN_DAILY_HOURS_PER_PROJECT for a title.
func (o *CapacityOracle) MinPerProject(title config.TitleID) float64 {
	return o.Config.MinDailyHoursPerProject[title]
}

// MaxProjects returns MAX_PROJECTS_PER_CONSULTANT for a title.
func (o *CapacityOracle) MaxProjects(title config.TitleID) int {
	return o.Config.MaxProjectsPerConsultant[title]
}

// RemainingHours returns max(0, daily cap - hours already charged) for a
// consultant/title/day.
func (o *CapacityOracle) RemainingHours(consultantID string, title config.TitleID, date calendar.Day) float64 {
	cap := o.DailyCap(title)
	charged := o.Store.DailyHours(consultantID, date)
	remaining := cap - charged
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasFreeProjectSlot reports whether a consultant's concurrency count on
// date is below their title's cap.
func (o *CapacityOracle) HasFreeProjectSlot(consultantID string, title config.TitleID, date calendar.Day) bool {
	return o.Store.ActiveCount(consultantID, date) < o.MaxProjects(title)
}

// ClipHours clips a drawn hour amount to the remaining daily capacity,
// reporting the clip through the returned bool rather than rejecting the
// draw (spec §4 Failure semantics: clipped, not retried).
func (o *CapacityOracle) ClipHours(draw money.Amount, consultantID string, title config.TitleID, date calendar.Day) (money.Amount, bool) {
	remaining := money.Hours(o.RemainingHours(consultantID, title, date))
	if draw.GreaterThan(remaining) {
		return remaining, true
	}
	return draw, false
}
