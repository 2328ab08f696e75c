/*
simulator.go - the Workforce Simulator's yearly step (spec §4.D).

Runs once per simulated year, in the fixed order the spec mandates:
attrition -> layoff -> promotion -> hiring -> continuation -> expansion.
Every stochastic decision is routed through the shared simrand.Source,
following the "no hidden globals" design note; every write goes through
Store, which rejects anything that would break the gapless title-history
invariant.
*/
package workforce

import (
	"math"
	"sort"
	"time"

	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/config"
	"github.com/FX93Y2/ConsultFirmDBMockup/money"
	"github.com/FX93Y2/ConsultFirmDBMockup/simrand"
	"github.com/google/uuid"
)

// Simulator runs the yearly workforce step against a Store.
type Simulator struct {
	Store  *Store
	Config *config.Config
	Rng    *simrand.Source

	activeUnits      []int   // business units currently open to new hires, in activation order
	runningHeadcount float64 // compounded target headcount, updated each StepYear
}

func NewSimulator(store *Store, cfg *config.Config, rng *simrand.Source) *Simulator {
	return &Simulator{
		Store:            store,
		Config:           cfg,
		Rng:              rng,
		activeUnits:      []int{1},
		runningHeadcount: float64(cfg.InitialConsultants),
	}
}

// Bootstrap creates the initial headcount, hired on the first day of the
// horizon, with titles drawn from the title distribution targets.
func (s *Simulator) Bootstrap(startYear int) error {
	hireDay := calendar.StartOfYear(startYear)
	titles := make([]config.TitleID, 0, len(config.AllTitles))
	weights := make([]float64, 0, len(config.AllTitles))
	for _, t := range config.AllTitles {
		titles = append(titles, t)
		weights = append(weights, s.Config.TitleDistributionTargets[t])
	}
	for i := 0; i < s.Config.InitialConsultants; i++ {
		title := simrand.WeightedChoice(s.Rng, titles, weights)
		if err := s.hireOne(title, hireDay, startYear); err != nil {
			return err
		}
	}
	return nil
}

// StepYear executes the yearly step for year Y and returns a structured
// summary of what happened (spec §7: non-fatal conditions are reported,
// not raised as exceptions).
func (s *Simulator) StepYear(year int) (YearSummary, error) {
	summary := YearSummary{Year: year}

	growth := s.Config.GrowthRate(year)
	s.runningHeadcount *= 1 + growth
	targetHeadcount := int(math.Round(s.runningHeadcount))
	if targetHeadcount < 1 {
		targetHeadcount = 1
	}
	titleSlots := s.computeTitleSlots(targetHeadcount)

	if err := s.stepAttrition(year, &summary); err != nil {
		return summary, err
	}
	if growth < 0 {
		if err := s.stepLayoff(year, growth, &summary); err != nil {
			return summary, err
		}
	}
	if err := s.stepPromotion(year, titleSlots, &summary); err != nil {
		return summary, err
	}
	if err := s.stepHiring(year, titleSlots, &summary); err != nil {
		return summary, err
	}
	if err := s.stepContinuation(year, &summary); err != nil {
		return summary, err
	}

	summary.HeadcountEnd = len(s.Store.ConsultantsEmployedOn(calendar.EndOfYear(year)))
	s.stepExpansion(summary.HeadcountEnd)
	return summary, nil
}

// computeTitleSlots turns a target headcount into per-title slot counts,
// then inflates higher (senior) titles so each is at least 30% of the
// title below it, per spec §4.D. The difference between the slot total
// and targetHeadcount is then added to (or taken from) title 1, clamped
// at zero; when the clamp applies, the total exceeds targetHeadcount.
func (s *Simulator) computeTitleSlots(targetHeadcount int) map[config.TitleID]int {
	slots := make(map[config.TitleID]int, len(config.AllTitles))
	for _, t := range config.AllTitles {
		slots[t] = int(math.Round(s.Config.TitleDistributionTargets[t] * float64(targetHeadcount)))
	}
	for i := 1; i < len(config.AllTitles); i++ {
		below := config.AllTitles[i-1]
		this := config.AllTitles[i]
		floor := int(math.Ceil(0.30 * float64(slots[below])))
		if slots[this] < floor {
			slots[this] = floor
		}
	}
	total := 0
	for _, t := range config.AllTitles {
		total += slots[t]
	}
	slots[config.TitleAnalyst] += targetHeadcount - total
	if slots[config.TitleAnalyst] < 0 {
		slots[config.TitleAnalyst] = 0
	}
	return slots
}

// stepAttrition closes, per currently-employed consultant, their open
// entry with probability equal to their title's attrition rate.
func (s *Simulator) stepAttrition(year int, summary *YearSummary) error {
	daysInYear := calendar.DaysInYear(year)
	for _, c := range s.Store.ConsultantsEmployedOn(calendar.StartOfYear(year)) {
		entry := s.Store.OpenEntryOn(c.ID, calendar.StartOfYear(year))
		if entry == nil {
			continue
		}
		prob := s.Config.AttritionProbability[entry.TitleID]
		if !s.Rng.Bool(prob) {
			continue
		}
		day := daysInYear[s.Rng.IntInRange(0, len(daysInYear)-1)]
		if day.Before(entry.Start) {
			day = entry.Start
		}
		if err := s.terminate(c.ID, *entry, day, EventAttrition); err != nil {
			return err
		}
		summary.Attritions++
	}
	return nil
}

// stepLayoff runs only in years with negative growth.
func (s *Simulator) stepLayoff(year int, growth float64, summary *YearSummary) error {
	employed := s.Store.ConsultantsEmployedOn(calendar.StartOfYear(year))
	headcount := len(employed)
	if headcount == 0 {
		return nil
	}
	fraction := math.Min(s.Config.MaxLayoffFraction, math.Abs(growth))
	layoffCount := int(math.Round(fraction * float64(headcount)))
	if layoffCount <= 0 {
		return nil
	}

	byTitle := make(map[config.TitleID][]*Consultant)
	for _, c := range employed {
		entry := s.Store.OpenEntryOn(c.ID, calendar.StartOfYear(year))
		if entry == nil {
			continue
		}
		byTitle[entry.TitleID] = append(byTitle[entry.TitleID], c)
	}

	daysInYear := calendar.DaysInYear(year)
	remaining := layoffCount
	for _, t := range config.AllTitles {
		if remaining <= 0 {
			break
		}
		pool := byTitle[t]
		if len(pool) == 0 {
			continue
		}
		want := int(math.Round(s.Config.LayoffWeights[t] * float64(layoffCount)))
		if want > len(pool) {
			want = len(pool)
		}
		if want > remaining {
			want = remaining
		}
		// Fewest years-in-role first: sort by the start of the unbroken run
		// at this title, descending (latest start = least tenure in the title).
		roleStart := func(id string) calendar.Day {
			hist := s.Store.History(id)
			k := len(hist) - 1
			for k > 0 && hist[k-1].TitleID == t {
				k--
			}
			return hist[k].Start
		}
		sort.Slice(pool, func(i, j int) bool {
			return roleStart(pool[i].ID).After(roleStart(pool[j].ID))
		})
		for i := 0; i < want; i++ {
			c := pool[i]
			entry := s.Store.OpenEntryOn(c.ID, calendar.StartOfYear(year))
			if entry == nil {
				continue
			}
			day := daysInYear[s.Rng.IntInRange(182, len(daysInYear)-1)]
			if day.Before(entry.Start) {
				day = entry.Start
			}
			if err := s.terminate(c.ID, *entry, day, EventLayoff); err != nil {
				return err
			}
			summary.Layoffs++
			remaining--
		}
	}
	return nil
}

// terminate covers the whole window of the consultant's final active
// year with the Attrition/Layoff record, not just the event day. If the
// open entry started before the final year, it's closed out at the end
// of the prior year and a new entry spanning finalYearStart..day is
// appended carrying the terminal kind. If the open entry itself began
// during the final year (a same-year hire or promotion), there is
// nothing to close first — that entry is reclassified in place as the
// terminal record.
func (s *Simulator) terminate(consultantID string, entry TitleHistoryEntry, day calendar.Day, kind EventKind) error {
	if day.BeforeOrEqual(entry.Start) {
		day = entry.Start.AddDays(1)
	}
	finalYearStart := calendar.StartOfYear(day.Year())
	if entry.Start.Before(finalYearStart) {
		if err := s.Store.CloseOpenEntry(consultantID, finalYearStart.AddDays(-1)); err != nil {
			return err
		}
		return s.Store.AddTitleEntry(TitleHistoryEntry{
			ConsultantID: consultantID,
			TitleID:      entry.TitleID,
			Start:        finalYearStart,
			End:          &day,
			Event:        kind,
			Salary:       entry.Salary,
		})
	}
	return s.Store.TerminateOpenEntry(consultantID, day, kind)
}

// stepPromotion ranks employed consultants per title by tenure and
// promotes the most-eligible up to the next title's slot target.
func (s *Simulator) stepPromotion(year int, titleSlots map[config.TitleID]int, summary *YearSummary) error {
	asOf := calendar.StartOfYear(year)
	for i, t := range config.AllTitles {
		if i == len(config.AllTitles)-1 {
			break // no promotion beyond the top title
		}
		nextTitle := config.AllTitles[i+1]

		var candidates []*Consultant
		for _, c := range s.Store.ConsultantsEmployedOn(asOf) {
			entry := s.Store.OpenEntryOn(c.ID, asOf)
			if entry != nil && entry.TitleID == t {
				candidates = append(candidates, c)
			}
		}
		roleStart := func(id string) calendar.Day { // start of the unbroken run at title t
			hist := s.Store.History(id)
			k := len(hist) - 1
			for k > 0 && hist[k-1].TitleID == t {
				k--
			}
			return hist[k].Start
		}
		sort.Slice(candidates, func(i, j int) bool {
			return roleStart(candidates[i].ID).Before(roleStart(candidates[j].ID)) // earlier start = more tenure, ranked first
		})

		currentAtNext := 0
		for _, c := range s.Store.ConsultantsEmployedOn(asOf) {
			entry := s.Store.OpenEntryOn(c.ID, asOf)
			if entry != nil && entry.TitleID == nextTitle {
				currentAtNext++
			}
		}
		slotTarget := titleSlots[nextTitle]
		minYears := s.Config.MinYearsInRoleForPromotion[t]
		base := s.Config.BasePromotionProbability[t]

		daysInYear := calendar.DaysInYear(year)
		for _, c := range candidates {
			if currentAtNext >= slotTarget {
				break
			}
			entry := s.Store.OpenEntryOn(c.ID, asOf)
			if entry == nil {
				continue
			}
			yearsInRole := calendar.DaysBetween(roleStart(c.ID), asOf) / 365
			if yearsInRole < minYears {
				continue
			}
			excess := float64(yearsInRole - minYears)
			prob := math.Min(base+0.05*excess, s.Config.PromotionProbabilityCeiling)
			if !s.Rng.Bool(prob) {
				continue
			}

			promotionDay := daysInYear[s.Rng.IntInRange(0, len(daysInYear)-1)]
			dayBefore := promotionDay.AddDays(-1)
			if dayBefore.Before(entry.Start) {
				dayBefore = entry.Start
			}
			if err := s.Store.CloseOpenEntry(c.ID, dayBefore); err != nil {
				return err
			}
			newRange := s.Config.SalaryRanges[nextTitle]
			drawn := money.CurrencyInt(s.Rng.IntInRange(newRange.Min, newRange.Max))
			raised := entry.Salary.MulFloat(1.1)
			salary := drawn.Max(raised)
			if err := s.Store.AddTitleEntry(TitleHistoryEntry{
				ConsultantID: c.ID,
				TitleID:      nextTitle,
				Start:        promotionDay,
				Event:        EventPromotion,
				Salary:       salary,
			}); err != nil {
				return err
			}
			currentAtNext++
			summary.Promotions++
		}
	}
	return nil
}

// stepHiring creates new consultants to fill every slot still open at
// each title after attrition, layoff, and promotion.
func (s *Simulator) stepHiring(year int, titleSlots map[config.TitleID]int, summary *YearSummary) error {
	asOf := calendar.EndOfYear(year)
	for _, t := range config.AllTitles {
		current := 0
		for _, c := range s.Store.ConsultantsEmployedOn(asOf) {
			if s.Store.LatestTitleID(c.ID, asOf) == t {
				current++
			}
		}
		want := titleSlots[t] - current
		for i := 0; i < want; i++ {
			hireDay := s.drawSeasonalHireDay(year)
			if err := s.hireOne(t, hireDay, year); err != nil {
				return err
			}
			summary.Hires++
		}
	}
	return nil
}

func (s *Simulator) drawSeasonalHireDay(year int) calendar.Day {
	windows := s.Config.SeasonalHiringWindows
	names := make([]string, len(windows))
	weights := make([]float64, len(windows))
	for i, w := range windows {
		names[i] = w.Name
		weights[i] = w.Weight
	}
	chosen := simrand.WeightedChoice(s.Rng, names, weights)
	for _, w := range windows {
		if w.Name != chosen {
			continue
		}
		start := calendar.NewDay(year, time.Month(w.StartMonth), 1)
		end := calendar.EndOfMonth(year, time.Month(w.EndMonth))
		offset := s.Rng.IntInRange(0, calendar.DaysBetween(start, end))
		return start.AddDays(offset)
	}
	return calendar.StartOfYear(year)
}

func (s *Simulator) hireOne(title config.TitleID, hireDay calendar.Day, hireYear int) error {
	unitID := s.drawActiveUnit()
	locales := s.Config.LocalePoolByBusinessUnit[unitID]
	locale := fallbackLocale
	if len(locales) > 0 {
		locale = locales[s.Rng.IntInRange(0, len(locales)-1)]
	}
	given, family := DrawName(s.Rng, locale)
	salaryRange := s.Config.SalaryRanges[title]
	salary := money.CurrencyInt(s.Rng.IntInRange(salaryRange.Min, salaryRange.Max))

	c := Consultant{
		ID:             uuid.NewString(),
		GivenName:      given,
		FamilyName:     family,
		Email:          Email(given, family),
		Phone:          DrawPhone(s.Rng, locale),
		BusinessUnitID: unitID,
		HireYear:       hireYear,
		Metadata:       ConsultantMetadata{CurrentTitleID: title},
	}
	s.Store.AddConsultant(c)
	return s.Store.AddTitleEntry(TitleHistoryEntry{
		ConsultantID: c.ID,
		TitleID:      title,
		Start:        hireDay,
		Event:        EventHire,
		Salary:       salary,
	})
}

// drawActiveUnit picks a business unit weighted toward lower (earlier
// activated) unit ids, which matches the reading that unit 1 absorbs the
// bulk of hiring with later units growing in as they activate.
func (s *Simulator) drawActiveUnit() int {
	weights := make([]float64, len(s.activeUnits))
	for i := range s.activeUnits {
		weights[i] = 1.0 / float64(i+1)
	}
	return simrand.WeightedChoice(s.Rng, s.activeUnits, weights)
}

// stepContinuation re-opens, with a salary bump, the entry of every
// consultant whose open entry predates this year untouched by the
// steps above.
func (s *Simulator) stepContinuation(year int, summary *YearSummary) error {
	dec31PrevYear := calendar.NewDay(year-1, 12, 31)
	jan1 := calendar.StartOfYear(year)
	for _, c := range s.Store.ConsultantsEmployedOn(jan1) {
		entry := s.Store.OpenEntryOn(c.ID, jan1)
		if entry == nil || !entry.IsOpen() || entry.Start.Year() >= year {
			continue
		}
		if err := s.Store.CloseOpenEntry(c.ID, dec31PrevYear); err != nil {
			return err
		}
		raise := 1 + s.Rng.Uniform(s.Config.ContinuationRaiseMin, s.Config.ContinuationRaiseMax)
		salary := entry.Salary.MulFloat(raise)
		if err := s.Store.AddTitleEntry(TitleHistoryEntry{
			ConsultantID: c.ID,
			TitleID:      entry.TitleID,
			Start:        jan1,
			Event:        EventContinuation,
			Salary:       salary,
		}); err != nil {
			return err
		}
		summary.Continuations++
	}
	return nil
}

func (s *Simulator) stepExpansion(headcount int) {
	for _, th := range s.Config.ExpansionThresholds {
		if headcount < th.Headcount {
			continue
		}
		found := false
		for _, u := range s.activeUnits {
			if u == th.BusinessUnitID {
				found = true
				break
			}
		}
		if !found {
			s.activeUnits = append(s.activeUnits, th.BusinessUnitID)
		}
	}
}
