package workforce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/simrand"
	"github.com/FX93Y2/ConsultFirmDBMockup/workforce"
)

// S6: re-deriving payroll from title history produces exactly one
// PayrollRecord per (consultant, year-month) covered by that consultant's
// employment window.
func TestDerivePayroll_OneRecordPerMonthOfEmployment(t *testing.T) {
	store := workforce.NewStore()
	newHired(t, store, "c1", calendar.NewDay(2015, 1, 1))
	require.NoError(t, store.CloseOpenEntry("c1", calendar.NewDay(2015, 3, 31)))

	rng := simrand.New(1)
	records := workforce.DerivePayroll(store, rng)

	require.Len(t, records, 3)
	months := map[string]bool{}
	for _, r := range records {
		assert.Equal(t, "c1", r.ConsultantID)
		months[r.EffectiveAt.YearMonth().Start().String()] = true
	}
	assert.Len(t, months, 3)
}

func TestDerivePayroll_RecordsOrderedByEffectiveDate(t *testing.T) {
	store := workforce.NewStore()
	newHired(t, store, "c1", calendar.NewDay(2015, 1, 1))
	newHired(t, store, "c2", calendar.NewDay(2014, 6, 1))

	rng := simrand.New(2)
	records := workforce.DerivePayroll(store, rng)
	require.NotEmpty(t, records)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].EffectiveAt.Before(records[i-1].EffectiveAt))
	}
}

func TestDerivePayroll_SingleOpenEntryCoversOneMonth(t *testing.T) {
	store := workforce.NewStore()
	newHired(t, store, "c1", calendar.NewDay(2015, 5, 10))

	rng := simrand.New(3)
	records := workforce.DerivePayroll(store, rng)
	require.Len(t, records, 1)
	assert.Equal(t, calendar.NewDay(2015, 5, 1), records[0].EffectiveAt)
}
