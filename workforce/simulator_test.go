package workforce_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/config"
	"github.com/FX93Y2/ConsultFirmDBMockup/simrand"
	"github.com/FX93Y2/ConsultFirmDBMockup/workforce"
)

// S1: a single-year, positive-growth run ends with at least the initial
// headcount (no layoffs fire when growth is non-negative).
func TestSimulator_S1_PositiveGrowthPreservesHeadcount(t *testing.T) {
	cfg := config.NewDefault()
	cfg.HorizonStartYear = 2015
	cfg.HorizonEndYear = 2015
	cfg.InitialConsultants = 5
	require.NoError(t, cfg.Validate())

	rng := simrand.New(cfg.Seed)
	store := workforce.NewStore()
	sim := workforce.NewSimulator(store, cfg, rng)

	require.NoError(t, sim.Bootstrap(2015))
	require.Len(t, store.ConsultantsEmployedOn(calendar.StartOfYear(2015)), 5)

	summary, err := sim.StepYear(2015)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Layoffs)
	assert.Equal(t, summary.HeadcountEnd, len(store.ConsultantsEmployedOn(calendar.EndOfYear(2015))))
	assert.GreaterOrEqual(t, summary.HeadcountEnd, 5)
}

// S3: negative growth in a year triggers layoffs and shrinks headcount.
func TestSimulator_S3_NegativeGrowthTriggersLayoffs(t *testing.T) {
	cfg := config.NewDefault()
	cfg.HorizonStartYear = 2015
	cfg.HorizonEndYear = 2016
	cfg.InitialConsultants = 10
	cfg.GrowthRateByYear = map[int]float64{2016: -0.15}
	require.NoError(t, cfg.Validate())

	rng := simrand.New(cfg.Seed)
	store := workforce.NewStore()
	sim := workforce.NewSimulator(store, cfg, rng)
	require.NoError(t, sim.Bootstrap(2015))

	_, err := sim.StepYear(2015)
	require.NoError(t, err)
	headcount2015 := len(store.ConsultantsEmployedOn(calendar.EndOfYear(2015)))

	summary2016, err := sim.StepYear(2016)
	require.NoError(t, err)
	assert.Greater(t, summary2016.Layoffs, 0)

	headcount2016 := len(store.ConsultantsEmployedOn(calendar.EndOfYear(2016)))
	assert.Less(t, headcount2016, headcount2015)
}

// Every TitleHistoryEntry's terminal event, when present, must be the
// last entry in that consultant's history (spec §8 property 2).
func TestSimulator_TerminalEntryIsAlwaysLast(t *testing.T) {
	cfg := config.NewDefault()
	cfg.HorizonStartYear = 2015
	cfg.HorizonEndYear = 2017
	cfg.InitialConsultants = 20
	require.NoError(t, cfg.Validate())

	rng := simrand.New(cfg.Seed)
	store := workforce.NewStore()
	sim := workforce.NewSimulator(store, cfg, rng)
	require.NoError(t, sim.Bootstrap(2015))
	for _, y := range []int{2015, 2016, 2017} {
		_, err := sim.StepYear(y)
		require.NoError(t, err)
	}

	for _, c := range store.AllConsultants() {
		hist := store.History(c.ID)
		for i, e := range hist {
			if e.Event.IsTerminal() {
				assert.Equal(t, len(hist)-1, i, "terminal entry for %s must be the last history row", c.ID)
			}
		}
	}
}

// Every history's entries are gapless and non-overlapping by construction
// (the store rejects anything else), so a full replay should never fail.
func TestSimulator_S2_HistoryIsGaplessAcrossMultipleYears(t *testing.T) {
	cfg := config.NewDefault()
	cfg.HorizonStartYear = 2015
	cfg.HorizonEndYear = 2017
	cfg.InitialConsultants = 20
	require.NoError(t, cfg.Validate())

	rng := simrand.New(cfg.Seed)
	store := workforce.NewStore()
	sim := workforce.NewSimulator(store, cfg, rng)
	require.NoError(t, sim.Bootstrap(2015))

	totalPromotions := 0
	for _, y := range []int{2015, 2016, 2017} {
		summary, err := sim.StepYear(y)
		require.NoError(t, err)
		totalPromotions += summary.Promotions
	}
	assert.Greater(t, totalPromotions, 0)

	for _, c := range store.AllConsultants() {
		hist := store.History(c.ID)
		for i := 1; i < len(hist); i++ {
			require.NotNil(t, hist[i-1].End, "entry %d for %s should be closed", i-1, c.ID)
			assert.Equal(t, 1, calendar.DaysBetween(*hist[i-1].End, hist[i].Start), "entries must be gapless")
		}
	}
}
