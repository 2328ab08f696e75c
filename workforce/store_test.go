package workforce_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/config"
	"github.com/FX93Y2/ConsultFirmDBMockup/money"
	"github.com/FX93Y2/ConsultFirmDBMockup/workforce"
)

func newHired(t *testing.T, store *workforce.Store, id string, hireDay calendar.Day) {
	t.Helper()
	store.AddConsultant(workforce.Consultant{ID: id, GivenName: "A", FamilyName: "B", BusinessUnitID: 1, HireYear: hireDay.Year()})
	err := store.AddTitleEntry(workforce.TitleHistoryEntry{
		ConsultantID: id,
		TitleID:      config.TitleAnalyst,
		Start:        hireDay,
		Event:        workforce.EventHire,
		Salary:       money.CurrencyInt(70000),
	})
	require.NoError(t, err)
}

func TestAddTitleEntry_FirstEntryMustBeHire(t *testing.T) {
	store := workforce.NewStore()
	store.AddConsultant(workforce.Consultant{ID: "c1"})
	err := store.AddTitleEntry(workforce.TitleHistoryEntry{
		ConsultantID: "c1",
		TitleID:      config.TitleConsultant,
		Start:        calendar.NewDay(2015, time.January, 1),
		Event:        workforce.EventPromotion,
	})
	assert.Error(t, err)
}

func TestAddTitleEntry_RejectsWriteWhilePreviousEntryOpen(t *testing.T) {
	store := workforce.NewStore()
	newHired(t, store, "c1", calendar.NewDay(2015, time.January, 1))
	err := store.AddTitleEntry(workforce.TitleHistoryEntry{
		ConsultantID: "c1",
		TitleID:      config.TitleConsultant,
		Start:        calendar.NewDay(2015, time.June, 1),
		Event:        workforce.EventPromotion,
	})
	assert.Error(t, err, "appending while the previous entry is still open must be rejected")
}

func TestAddTitleEntry_GaplessSuccession(t *testing.T) {
	store := workforce.NewStore()
	newHired(t, store, "c1", calendar.NewDay(2015, time.January, 1))

	require.NoError(t, store.CloseOpenEntry("c1", calendar.NewDay(2016, time.June, 30)))
	err := store.AddTitleEntry(workforce.TitleHistoryEntry{
		ConsultantID: "c1",
		TitleID:      config.TitleConsultant,
		Start:        calendar.NewDay(2016, time.July, 1),
		Event:        workforce.EventPromotion,
		Salary:       money.CurrencyInt(85000),
	})
	require.NoError(t, err)

	hist := store.History("c1")
	require.Len(t, hist, 2)
	assert.True(t, hist[0].End.Equal(calendar.NewDay(2016, time.June, 30)))
	assert.Equal(t, calendar.NewDay(2016, time.July, 1), hist[1].Start)
	assert.True(t, hist[1].IsOpen())
}

func TestAddTitleEntry_RejectsGapBetweenEntries(t *testing.T) {
	store := workforce.NewStore()
	newHired(t, store, "c1", calendar.NewDay(2015, time.January, 1))
	require.NoError(t, store.CloseOpenEntry("c1", calendar.NewDay(2016, time.June, 30)))

	err := store.AddTitleEntry(workforce.TitleHistoryEntry{
		ConsultantID: "c1",
		TitleID:      config.TitleConsultant,
		Start:        calendar.NewDay(2016, time.July, 3), // gap: skips July 1-2
		Event:        workforce.EventPromotion,
	})
	assert.Error(t, err)
}

func TestAddTitleEntry_RejectsWriteAfterTerminalEntry(t *testing.T) {
	store := workforce.NewStore()
	newHired(t, store, "c1", calendar.NewDay(2015, time.January, 1))
	require.NoError(t, store.CloseOpenEntry("c1", calendar.NewDay(2015, time.December, 31)))
	require.NoError(t, store.AddTitleEntry(workforce.TitleHistoryEntry{
		ConsultantID: "c1",
		TitleID:      config.TitleAnalyst,
		Start:        calendar.NewDay(2016, time.January, 1),
		Event:        workforce.EventAttrition,
	}))

	err := store.AddTitleEntry(workforce.TitleHistoryEntry{
		ConsultantID: "c1",
		TitleID:      config.TitleAnalyst,
		Start:        calendar.NewDay(2016, time.January, 2),
		Event:        workforce.EventHire,
	})
	assert.Error(t, err)
}

func TestOpenEntryOn_ReturnsEntryContainingDate(t *testing.T) {
	store := workforce.NewStore()
	newHired(t, store, "c1", calendar.NewDay(2015, time.January, 1))

	e := store.OpenEntryOn("c1", calendar.NewDay(2015, time.March, 15))
	require.NotNil(t, e)
	assert.Equal(t, config.TitleAnalyst, e.TitleID)

	e = store.OpenEntryOn("c1", calendar.NewDay(2014, time.December, 31))
	assert.Nil(t, e)
}

func TestConsultantsEmployedOn_ExcludesTerminated(t *testing.T) {
	store := workforce.NewStore()
	newHired(t, store, "c1", calendar.NewDay(2015, time.January, 1))
	newHired(t, store, "c2", calendar.NewDay(2015, time.January, 1))
	require.NoError(t, store.CloseOpenEntry("c2", calendar.NewDay(2015, time.June, 30)))
	require.NoError(t, store.AddTitleEntry(workforce.TitleHistoryEntry{
		ConsultantID: "c2",
		TitleID:      config.TitleAnalyst,
		Start:        calendar.NewDay(2015, time.July, 1),
		Event:        workforce.EventAttrition,
	}))

	employed := store.ConsultantsEmployedOn(calendar.NewDay(2015, time.December, 31))
	require.Len(t, employed, 1)
	assert.Equal(t, "c1", employed[0].ID)
}
