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

func hirePMAndTeam(t *testing.T, wf *workforce.Store, n int, title config.TitleID) (*workforce.Consultant, []*workforce.Consultant) {
	t.Helper()
	mk := func(id string, tid config.TitleID) *workforce.Consultant {
		wf.AddConsultant(workforce.Consultant{ID: id, GivenName: "A", FamilyName: id, BusinessUnitID: 1})
		require.NoError(t, wf.AddTitleEntry(workforce.TitleHistoryEntry{
			ConsultantID: id, TitleID: tid, Start: calendar.NewDay(2014, time.January, 1), Event: workforce.EventHire,
			Salary: money.CurrencyInt(100000),
		}))
		return wf.Consultant(id)
	}
	pm := mk("pm-1", title)
	members := make([]*workforce.Consultant, 0, n)
	for i := 0; i < n; i++ {
		members = append(members, mk("member-"+string(rune('a'+i)), config.TitleConsultant))
	}
	return pm, members
}

// Billing-rate coverage: a T&M project carries exactly one
// ProjectBillingRate row per title id 1..6 (spec §8 property).
func TestFinancials_TimeAndMaterialBillingRateCoverage(t *testing.T) {
	cfg := config.NewDefault()
	rng := simrand.New(22)
	store := project.NewStore()
	wf := workforce.NewStore()
	creator := project.NewCreator(store, wf, cfg, rng)
	pm, members := hirePMAndTeam(t, wf, 4, config.TitleManager)

	proj := project.Project{ID: "p-tm", Kind: project.KindTimeAndMaterial, CreatedAt: calendar.NewDay(2015, time.June, 1), PlannedHours: money.Hours(500)}
	delivs := []project.Deliverable{{ID: "d1", ProjectID: "p-tm", PlannedHours: money.Hours(500), TargetHours: money.Hours(500)}}

	creator.FinancialsForTest(&proj, delivs, pm, members)

	rates := store.BillingRates("p-tm")
	require.Len(t, rates, len(config.AllTitles))
	seen := map[config.TitleID]bool{}
	for _, r := range rates {
		seen[r.TitleID] = true
		assert.True(t, r.Rate.IsPositive())
	}
	assert.Len(t, seen, len(config.AllTitles))
	assert.Nil(t, proj.Price, "T&M projects must not carry a Fixed-style Price")
	require.NotNil(t, proj.EstimatedBudget)
}

func TestFinancials_FixedProjectPriceIsRoundedAndPartitioned(t *testing.T) {
	cfg := config.NewDefault()
	rng := simrand.New(23)
	store := project.NewStore()
	wf := workforce.NewStore()
	creator := project.NewCreator(store, wf, cfg, rng)
	pm, members := hirePMAndTeam(t, wf, 4, config.TitleManager)

	proj := project.Project{ID: "p-fixed", Kind: project.KindFixed, CreatedAt: calendar.NewDay(2015, time.June, 1), PlannedHours: money.Hours(500)}
	delivs := []project.Deliverable{
		{ID: "d1", ProjectID: "p-fixed", PlannedHours: money.Hours(200), TargetHours: money.Hours(200)},
		{ID: "d2", ProjectID: "p-fixed", PlannedHours: money.Hours(300), TargetHours: money.Hours(300)},
	}

	creator.FinancialsForTest(&proj, delivs, pm, members)

	require.NotNil(t, proj.Price)
	rem := proj.Price.Value.Mod(money.CurrencyInt(1000).Value)
	assert.True(t, rem.IsZero(), "Fixed project price must be rounded to the nearest 1000")

	sum := money.CurrencyInt(0)
	for _, d := range delivs {
		require.NotNil(t, d.Price)
		sum = sum.Add(*d.Price)
	}
	assert.True(t, sum.Value.Equal(proj.Price.Value), "deliverable prices must sum exactly to the project price")

	assert.Empty(t, store.BillingRates("p-fixed"), "Fixed projects must not persist ProjectBillingRate rows")
}
