package project_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/money"
	"github.com/FX93Y2/ConsultFirmDBMockup/project"
)

func TestStore_ActiveCountReflectsOpenAssignments(t *testing.T) {
	store := project.NewStore()
	store.AddProject(project.Project{ID: "p1"})
	store.AddAssignment(project.ProjectTeamAssignment{ProjectID: "p1", ConsultantID: "c1", Role: project.RoleProjectManager, Start: calendar.NewDay(2015, time.January, 1)})

	assert.Equal(t, 1, store.ActiveCount("c1", calendar.NewDay(2015, time.June, 1)))

	store.CloseAssignment("p1", "c1", calendar.NewDay(2015, time.March, 1))
	assert.Equal(t, 0, store.ActiveCount("c1", calendar.NewDay(2015, time.June, 1)))
	assert.Equal(t, 1, store.ActiveCount("c1", calendar.NewDay(2015, time.February, 1)))
}

func TestStore_DailyHoursSumsChargesOnSameDate(t *testing.T) {
	store := project.NewStore()
	date := calendar.NewDay(2015, time.March, 2)
	store.AddCharge(project.ConsultantDeliverable{ConsultantID: "c1", DeliverableID: "d1", ProjectID: "p1", Date: date, Hours: money.Hours(4)})
	store.AddCharge(project.ConsultantDeliverable{ConsultantID: "c1", DeliverableID: "d2", ProjectID: "p1", Date: date, Hours: money.Hours(4)})

	assert.InDelta(t, 8.0, store.DailyHours("c1", date), 0.001)
}

func TestStore_ActiveProjectsOnIncludesNotStartedAfterActualStart(t *testing.T) {
	store := project.NewStore()
	start := calendar.NewDay(2015, time.January, 10)
	store.AddProject(project.Project{ID: "p1", Status: project.StatusNotStarted, ActualStart: &start})
	store.AddProject(project.Project{ID: "p2", Status: project.StatusNotStarted, ActualStart: nil})

	active := store.ActiveProjectsOn(calendar.NewDay(2015, time.January, 20))
	require.Len(t, active, 1)
	assert.Equal(t, "p1", active[0].ID)
}

