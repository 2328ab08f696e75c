package project_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/config"
	"github.com/FX93Y2/ConsultFirmDBMockup/money"
	"github.com/FX93Y2/ConsultFirmDBMockup/project"
	"github.com/FX93Y2/ConsultFirmDBMockup/simrand"
	"github.com/FX93Y2/ConsultFirmDBMockup/workforce"
)

func setupActiveProject(t *testing.T, store *project.Store, wf *workforce.Store, date calendar.Day) (*project.Project, []*workforce.Consultant) {
	t.Helper()
	pm, members := hirePMAndTeam(t, wf, 3, config.TitleManager)

	deliv := project.Deliverable{ID: "d1", ProjectID: "proj", PlannedStart: date, DueDate: date.AddDays(30), Status: project.DeliverableNotStarted, PlannedHours: money.Hours(80), TargetHours: money.Hours(80)}
	start := date
	p := project.Project{ID: "proj", Status: project.StatusInProgress, ActualStart: &start, PlannedHours: money.Hours(80), TargetHours: money.Hours(80), ActualHours: money.Hours(0)}
	store.AddProject(p)
	store.AddDeliverable(deliv)
	store.AddAssignment(project.ProjectTeamAssignment{ProjectID: "proj", ConsultantID: pm.ID, Role: project.RoleProjectManager, Start: date})
	for _, m := range members {
		store.AddAssignment(project.ProjectTeamAssignment{ProjectID: "proj", ConsultantID: m.ID, Role: project.RoleTeamMember, Start: date})
	}
	return store.Project("proj"), append([]*workforce.Consultant{pm}, members...)
}

// Hour cap: no consultant is ever charged more than their title's
// MaxDailyHoursPerTitle on a single day (spec §8 property: hour cap).
func TestAllocator_NeverExceedsDailyHourCap(t *testing.T) {
	cfg := config.NewDefault()
	rng := simrand.New(31)
	store := project.NewStore()
	wf := workforce.NewStore()
	creator := project.NewCreator(store, wf, cfg, rng)
	allocator := project.NewAllocator(store, wf, cfg, rng, creator)

	date := calendar.NewDay(2015, time.June, 1)
	_, team := setupActiveProject(t, store, wf, date)

	for d := 0; d < 10; d++ {
		allocator.StepDay(date.AddDays(d))
	}

	for _, c := range team {
		for d := 0; d < 10; d++ {
			day := date.AddDays(d)
			if day.IsWeekend() {
				continue
			}
			title := wf.LatestTitleID(c.ID, day)
			cap := cfg.MaxDailyHoursPerTitle[title]
			assert.LessOrEqual(t, store.DailyHours(c.ID, day), cap+0.0001)
		}
	}
}

// Progress monotonicity: a project's ProgressPercent never decreases as
// the allocator advances days (spec §8 property).
func TestAllocator_ProgressNeverDecreases(t *testing.T) {
	cfg := config.NewDefault()
	rng := simrand.New(32)
	store := project.NewStore()
	wf := workforce.NewStore()
	creator := project.NewCreator(store, wf, cfg, rng)
	allocator := project.NewAllocator(store, wf, cfg, rng, creator)

	date := calendar.NewDay(2015, time.June, 1)
	setupActiveProject(t, store, wf, date)

	last := 0
	for d := 0; d < 60; d++ {
		day := date.AddDays(d)
		allocator.StepDay(day)
		p := store.Project("proj")
		require.GreaterOrEqual(t, p.ProgressPercent, last)
		last = p.ProgressPercent
		if p.IsTerminal() {
			break
		}
	}
}

// State closure: once a project reaches a terminal status, every team
// assignment has a closed (non-nil) End date (spec §8 property).
func TestAllocator_TerminalProjectClosesAllAssignments(t *testing.T) {
	cfg := config.NewDefault()
	rng := simrand.New(33)
	store := project.NewStore()
	wf := workforce.NewStore()
	creator := project.NewCreator(store, wf, cfg, rng)
	allocator := project.NewAllocator(store, wf, cfg, rng, creator)

	date := calendar.NewDay(2015, time.June, 1)
	setupActiveProject(t, store, wf, date)

	for d := 0; d < 250; d++ {
		allocator.StepDay(date.AddDays(d))
		if store.Project("proj").IsTerminal() {
			break
		}
	}

	p := store.Project("proj")
	require.True(t, p.IsTerminal())
	for _, asn := range store.AssignmentsForProject("proj") {
		assert.False(t, asn.IsOpen(), "assignment for %s must be closed once the project is terminal", asn.ConsultantID)
	}
}

func TestAllocator_CancelsProjectWithNoHoursAfterGracePeriod(t *testing.T) {
	cfg := config.NewDefault()
	rng := simrand.New(34)
	store := project.NewStore()
	wf := workforce.NewStore()
	creator := project.NewCreator(store, wf, cfg, rng)
	allocator := project.NewAllocator(store, wf, cfg, rng, creator)

	start := calendar.NewDay(2015, time.January, 1)
	store.AddProject(project.Project{ID: "dead", Status: project.StatusInProgress, ActualStart: &start, PlannedHours: money.Hours(80), TargetHours: money.Hours(80), ActualHours: money.Hours(0)})
	store.AddDeliverable(project.Deliverable{ID: "dd1", ProjectID: "dead", PlannedStart: start.AddDays(200), DueDate: start.AddDays(230), Status: project.DeliverableNotStarted, PlannedHours: money.Hours(80), TargetHours: money.Hours(80)})

	past := start.AddDays(cfg.ProjectCancelAfterDays + 5)
	allocator.StepDay(past)

	assert.Equal(t, project.StatusCancelled, store.Project("dead").Status)
}
