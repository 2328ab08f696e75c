package sqlite_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/config"
	"github.com/FX93Y2/ConsultFirmDBMockup/money"
	"github.com/FX93Y2/ConsultFirmDBMockup/project"
	"github.com/FX93Y2/ConsultFirmDBMockup/store/sqlite"
	"github.com/FX93Y2/ConsultFirmDBMockup/workforce"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFlushWorkforce_WritesConsultantsAndHistory(t *testing.T) {
	db := newTestStore(t)

	wf := workforce.NewStore()
	wf.AddConsultant(workforce.Consultant{ID: "c1", GivenName: "Ada", FamilyName: "Lovelace", Email: "ada@example.com", BusinessUnitID: 1, HireYear: 2015})
	require.NoError(t, wf.AddTitleEntry(workforce.TitleHistoryEntry{
		ConsultantID: "c1", TitleID: config.TitleAnalyst,
		Start: calendar.NewDay(2015, time.January, 1), Event: workforce.EventHire, Salary: money.CurrencyInt(70000),
	}))

	require.NoError(t, db.FlushWorkforce(wf))
}

func TestFlushPayroll_WritesRecords(t *testing.T) {
	db := newTestStore(t)
	records := []workforce.PayrollRecord{
		{ConsultantID: "c1", Amount: money.Currency(5833.33), EffectiveAt: calendar.NewDay(2015, time.January, 1)},
	}
	assert.NoError(t, db.FlushPayroll(records))
}

func TestFlushProjects_WritesFullSubtree(t *testing.T) {
	db := newTestStore(t)

	store := project.NewStore()
	store.AddProject(project.Project{
		ID: "p1", ClientID: "client-001", Name: "Engagement 1", Kind: project.KindFixed, Status: project.StatusNotStarted,
		PlannedStart: calendar.NewDay(2015, time.January, 1), PlannedEnd: calendar.NewDay(2015, time.March, 1),
		PlannedHours: money.Hours(100), ActualHours: money.Hours(0), CreatedAt: calendar.NewDay(2015, time.January, 1),
	})
	store.AddAssignment(project.ProjectTeamAssignment{ProjectID: "p1", ConsultantID: "c1", Role: project.RoleProjectManager, Start: calendar.NewDay(2015, time.January, 1)})
	store.AddDeliverable(project.Deliverable{
		ID: "d1", ProjectID: "p1", Name: "Deliverable 1", PlannedStart: calendar.NewDay(2015, time.January, 1),
		DueDate: calendar.NewDay(2015, time.February, 1), Status: project.DeliverableNotStarted,
		PlannedHours: money.Hours(100), ActualHours: money.Hours(0),
	})
	store.SetBillingRates("p1", []project.ProjectBillingRate{{ProjectID: "p1", TitleID: config.TitleAnalyst, Rate: money.Currency(100)}})
	store.AddCharge(project.ConsultantDeliverable{ConsultantID: "c1", DeliverableID: "d1", ProjectID: "p1", Date: calendar.NewDay(2015, time.January, 5), Hours: money.Hours(6)})
	store.AddExpense(project.ProjectExpense{ProjectID: "p1", DeliverableID: "d1", Date: calendar.NewDay(2015, time.January, 31), Amount: money.Currency(500), Category: "Travel", IsBillable: true})

	require.NoError(t, db.FlushProjects(store))
}

func TestSeedReferenceData_InsertsTitlesUnitsAndClients(t *testing.T) {
	db := newTestStore(t)
	assert.NoError(t, db.SeedReferenceData([]string{"client-001", "client-002"}))
}
