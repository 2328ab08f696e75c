package project

import (
	"fmt"
	"math"

	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/money"
	"github.com/google/uuid"
)

// planDeliverables partitions a project's planned hours and planned
// window into 3-7 contiguous deliverables (spec §3, §4.G.g): the last
// deliverable absorbs all remaining planned hours, every prior
// deliverable is floored at DeliverableMinHoursFloor, and each
// deliverable's planned start is the day after the previous one's due
// date. Each deliverable's TargetHours — the quantity the allocator
// actually drives toward — is its planned-hours share scaled by the
// same overrun/underrun factor applied at the project level, so the
// factor propagates instead of being a no-op.
func (c *Creator) planDeliverables(projectID string, plannedStart, plannedEnd calendar.Day, plannedHours, targetHours money.Amount) []Deliverable {
	count := c.Rng.IntInRange(c.Config.DeliverableCountMin, c.Config.DeliverableCountMax)
	floor := c.Config.DeliverableMinHoursFloor
	total := plannedHours.Float64()
	targetFactor := targetHours.Float64() / total

	shares := make([]float64, count)
	remaining := total
	for i := 0; i < count-1; i++ {
		slotsLeft := count - i
		maxShare := remaining - floor*float64(slotsLeft-1)
		if maxShare < floor {
			maxShare = floor
		}
		share := math.Max(floor, c.Rng.Uniform(floor, maxShare))
		if share > remaining {
			share = remaining
		}
		shares[i] = share
		remaining -= share
	}
	shares[count-1] = remaining

	out := make([]Deliverable, 0, count)
	cursor := plannedStart
	cumulativeHours := 0.0
	for i, share := range shares {
		cumulativeHours += share
		proportion := cumulativeHours / total
		due := proportionalDay(plannedStart, plannedEnd, proportion)
		if due.After(plannedEnd) {
			due = plannedEnd
		}
		if i == count-1 {
			due = plannedEnd
		}
		c.deliverableSeq++
		out = append(out, Deliverable{
			ID:           fmt.Sprintf("deliv-%s", uuid.NewString()),
			ProjectID:    projectID,
			Name:         fmt.Sprintf("Deliverable %d", i+1),
			PlannedStart: cursor,
			DueDate:      due,
			Status:       DeliverableNotStarted,
			PlannedHours: money.Hours(share),
			TargetHours:  money.Hours(share * targetFactor),
			ActualHours:  money.Hours(0),
		})
		cursor = due.AddDays(1)
	}
	return out
}

// proportionalDay returns the day within [start, end] reached at the
// given proportion (0..1) of the window's working-day span.
func proportionalDay(start, end calendar.Day, proportion float64) calendar.Day {
	span := calendar.WorkingDaysBetween(start, end)
	offset := int(math.Round(float64(span) * proportion))
	if offset < 1 {
		offset = 1
	}
	return calendar.AddWorkingDays(start, offset-1)
}
