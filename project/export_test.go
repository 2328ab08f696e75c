package project

import (
	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/money"
	"github.com/FX93Y2/ConsultFirmDBMockup/workforce"
)

// PlanDeliverablesForTest exposes the unexported planDeliverables method
// to the project_test black-box package.
func PlanDeliverablesForTest(c *Creator, projectID string, start, end calendar.Day, plannedHours, targetHours money.Amount) []Deliverable {
	return c.planDeliverables(projectID, start, end, plannedHours, targetHours)
}

// FinancialsForTest exposes the unexported financials method to the
// project_test black-box package.
func (c *Creator) FinancialsForTest(proj *Project, deliverables []Deliverable, pm *workforce.Consultant, members []*workforce.Consultant) {
	c.financials(proj, deliverables, pm, members)
}
