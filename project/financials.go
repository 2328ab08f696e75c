package project

import (
	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/config"
	"github.com/FX93Y2/ConsultFirmDBMockup/money"
	"github.com/FX93Y2/ConsultFirmDBMockup/workforce"
)

// financials computes billing rates, estimated cost, the pre-generated
// expense schedule, and (for Fixed projects) the price, then writes the
// deliverable-level price partition and the project's financial fields
// in place (spec §4.G.h).
func (c *Creator) financials(proj *Project, deliverables []Deliverable, pm *workforce.Consultant, members []*workforce.Consultant) {
	team := append([]*workforce.Consultant{pm}, members...)
	teamSize := len(team)
	totalPlannedHours := proj.PlannedHours.Float64()
	hoursPerMember := 0.0
	if teamSize > 0 {
		hoursPerMember = totalPlannedHours / float64(teamSize)
	}

	estimatedCost := 0.0
	for _, m := range team {
		title := c.Workforce.LatestTitleID(m.ID, proj.CreatedAt)
		estimatedCost += c.hourlyCost(title, proj.Kind) * hoursPerMember
	}

	switch proj.Kind {
	case KindTimeAndMaterial:
		rates := make([]ProjectBillingRate, 0, len(config.AllTitles))
		for _, t := range config.AllTitles {
			rate := c.drawBillingRate(t)
			rates = append(rates, ProjectBillingRate{ProjectID: proj.ID, TitleID: t, Rate: rate})
		}
		c.Store.SetBillingRates(proj.ID, rates)
		budget := money.CurrencyInt(int(estimatedCost))
		proj.EstimatedBudget = &budget
	case KindFixed:
		// Fixed projects price off estimated cost + expenses (below);
		// no ProjectBillingRate rows are persisted for this kind.
	}

	schedule, billableExpenseTotal := c.generateExpenseSchedule(deliverables, estimatedCost)
	proj.Metadata.PredefinedExpenses = schedule
	proj.Metadata.EstimatedCost = money.CurrencyInt(int(estimatedCost))

	if proj.Kind == KindFixed {
		price := money.CurrencyInt(int(estimatedCost + billableExpenseTotal)).RoundToNearest1000()
		proj.Price = &price
		distributePriceAcrossDeliverables(deliverables, price, totalPlannedHours)
		proj.Metadata.EstimatedRevenue = price
	} else {
		proj.Metadata.EstimatedRevenue = money.CurrencyInt(int(estimatedCost + billableExpenseTotal))
	}
}

// hourlyCost implements the spec's literal (and dimensionally loose,
// per §9's Non-goals on financial accuracy) formula: avg monthly salary
// / 12 / (52*40) x (1 + overhead). Fixed projects apply
// FixedProjectRateDiscount to this cost-side rate, since their price is
// derived from estimated cost rather than from a persisted billing rate.
func (c *Creator) hourlyCost(title config.TitleID, kind ProjectKind) float64 {
	sr := c.Config.SalaryRanges[title]
	avgAnnual := float64(sr.Min+sr.Max) / 2
	avgMonthly := avgAnnual / 12
	cost := avgMonthly / 12 / (52 * 40) * (1 + c.Config.OverheadPercentage)
	if kind == KindFixed {
		cost *= 1 - c.Config.FixedProjectRateDiscount
	}
	return cost
}

// drawBillingRate draws a client-facing hourly rate for a title: a base
// range draw with symmetric jitter (spec §4.G.h). Only T&M projects
// persist these as ProjectBillingRate rows; FixedProjectRateDiscount
// applies to the cost-side rate used when a Fixed project's price is
// later derived from estimated cost, not to this table.
func (c *Creator) drawBillingRate(title config.TitleID) money.Amount {
	r := c.Config.BaseBillingRates[title]
	base := c.Rng.Uniform(r.Min, r.Max)
	rate := base * (1 + c.Rng.Uniform(-0.05, 0.05))
	return money.Currency(rate)
}

// generateExpenseSchedule splits each deliverable's planned-hours share
// of cost by category percentage, with jitter, spread uniformly across
// the deliverable's calendar months (spec §4.G.h, §4.H.4).
func (c *Creator) generateExpenseSchedule(deliverables []Deliverable, estimatedCost float64) ([]ExpenseSchedule, float64) {
	var schedule []ExpenseSchedule
	billableTotal := 0.0
	totalHours := 0.0
	for _, d := range deliverables {
		totalHours += d.PlannedHours.Float64()
	}
	if totalHours == 0 {
		return schedule, 0
	}

	for _, d := range deliverables {
		deliverableCost := estimatedCost * (d.PlannedHours.Float64() / totalHours)
		months := calendarMonthsBetween(d.PlannedStart, d.DueDate)
		if len(months) == 0 {
			months = []calendar.YearMonth{d.PlannedStart.YearMonth()}
		}
		for category, pct := range c.Config.ExpenseCategoryPercentages {
			jitter := 1 + c.Rng.Uniform(-0.20, 0.20)
			categoryTotal := deliverableCost * pct * jitter
			perMonth := categoryTotal / float64(len(months))
			for _, m := range months {
				billable := c.Rng.Bool(0.5)
				amt := money.Currency(perMonth)
				schedule = append(schedule, ExpenseSchedule{
					DeliverableID: d.ID,
					Category:      category,
					Month:         m,
					Amount:        amt,
					Billable:      billable,
				})
				if billable {
					billableTotal += perMonth
				}
			}
		}
	}
	return schedule, billableTotal
}

func calendarMonthsBetween(start, end calendar.Day) []calendar.YearMonth {
	var months []calendar.YearMonth
	ym := start.YearMonth()
	endYM := end.YearMonth()
	for {
		months = append(months, ym)
		if ym == endYM {
			break
		}
		ym = ym.Next()
	}
	return months
}

// distributePriceAcrossDeliverables assigns each Fixed-project
// deliverable a price proportional to its share of planned hours,
// satisfying the "prices sum to project price" invariant (spec §3).
func distributePriceAcrossDeliverables(deliverables []Deliverable, price money.Amount, totalPlannedHours float64) {
	if totalPlannedHours == 0 {
		return
	}
	assigned := money.CurrencyInt(0)
	for i := range deliverables {
		share := deliverables[i].PlannedHours.Float64() / totalPlannedHours
		var p money.Amount
		if i == len(deliverables)-1 {
			p = price.Sub(assigned)
		} else {
			p = price.MulFloat(share)
			assigned = assigned.Add(p)
		}
		deliverables[i].Price = &p
	}
}
