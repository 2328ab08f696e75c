/*
creator.go - the Project Creator (spec §4.G): the monthly step that
creates new projects, staffs them from the workforce pool under
title-distribution constraints, and pre-generates their financial and
expense schedule. Grounded on workforce.Simulator's shape (explicit
Store/Config/Rng fields, one Step method per time unit, no package-level
state) generalized from a yearly step to a monthly one.
*/
package project

import (
	"fmt"
	"math"
	"sort"

	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/config"
	"github.com/FX93Y2/ConsultFirmDBMockup/money"
	"github.com/FX93Y2/ConsultFirmDBMockup/simerr"
	"github.com/FX93Y2/ConsultFirmDBMockup/simrand"
	"github.com/FX93Y2/ConsultFirmDBMockup/workforce"
	"github.com/google/uuid"
)

// Creator runs the monthly project-creation step.
type Creator struct {
	Store     *Store
	Workforce *workforce.Store
	Config    *config.Config
	Rng       *simrand.Source
	Oracle    *CapacityOracle
	Clients   []string // reference ids, seeded by a collaborator (spec §6)

	monthlyTargets  map[calendar.YearMonth]int
	createdInMonth  map[calendar.YearMonth]int
	unitProjectsYTD map[int]int
	projectSeq      int
	deliverableSeq  int
}

func NewCreator(store *Store, wf *workforce.Store, cfg *config.Config, rng *simrand.Source) *Creator {
	return &Creator{
		Store:     store,
		Workforce: wf,
		Config:    cfg,
		Rng:       rng,
		Oracle:    &CapacityOracle{Store: store, Config: cfg},
		Clients:   []string{"client-001", "client-002", "client-003", "client-004", "client-005"},

		monthlyTargets:  make(map[calendar.YearMonth]int),
		createdInMonth:  make(map[calendar.YearMonth]int),
		unitProjectsYTD: make(map[int]int),
	}
}

// PlanYear computes the yearly project-count target for Y and spreads it
// across the year's 12 months, with the remainder above the even split
// randomly placed in mid-year months (spec §4.G: "Yearly target").
func (c *Creator) PlanYear(year int, headcountStart int, compoundedGrowth float64) {
	c.unitProjectsYTD = make(map[int]int)

	target := int(math.Ceil(float64(headcountStart) * (1 + compoundedGrowth) / 2))
	base := target / 12
	extra := target - base*12

	months := make([]calendar.YearMonth, 12)
	for i := 0; i < 12; i++ {
		months[i] = calendar.YearMonth{Year: year, Month: calendar.StartOfYear(year).AddMonths(i).Month()}
		c.monthlyTargets[months[i]] = base
	}
	midYear := months[2:10] // March..October, spec's {3..10}
	for i := 0; i < extra; i++ {
		ym := midYear[c.Rng.IntInRange(0, len(midYear)-1)]
		c.monthlyTargets[ym]++
	}
}

// StepMonth runs the project-creation step for one calendar month, with
// today set to the month's first day (spec §4.G).
func (c *Creator) StepMonth(today calendar.Day) error {
	ym := today.YearMonth()
	target := c.monthlyTargets[ym] - c.createdInMonth[ym]
	if target <= 0 {
		return nil
	}

	pms := c.eligiblePMs(today)
	capacity := 0
	for _, pm := range pms {
		capacity += c.Config.MaxProjectsPerConsultant[c.Workforce.LatestTitleID(pm.ID, today)] - c.Store.ActiveCount(pm.ID, today)
	}
	if capacity < 0 {
		capacity = 0
	}

	mu := math.Min(float64(target), float64(capacity))
	sigma := math.Max(0.1, mu*0.2)
	n := int(math.Round(c.Rng.Normal(mu, sigma)))
	if n < 0 {
		n = 0
	}
	if n > target {
		n = target
	}

	created := 0
	for i := 0; i < n; i++ {
		pms = c.eligiblePMs(today) // re-rank: earlier creations changed active counts
		if len(pms) == 0 {
			return &simerr.CapacityExhausted{YearMonth: ym.Start().String(), Reason: "no eligible project manager with free capacity"}
		}
		pm := pms[0]
		if err := c.createProject(pm, today, ym); err != nil {
			return err
		}
		created++
	}
	c.createdInMonth[ym] += created
	return nil
}

// eligiblePMs ranks title>=PMEligibleMinTitle consultants employed on
// date by (active_project_count ascending, title descending), filtering
// out anyone already at their concurrency cap (spec §4.G.1).
func (c *Creator) eligiblePMs(date calendar.Day) []*workforce.Consultant {
	var pool []*workforce.Consultant
	for _, cons := range c.Workforce.ConsultantsEmployedOn(date) {
		title := c.Workforce.LatestTitleID(cons.ID, date)
		if title < c.Config.PMEligibleMinTitle {
			continue
		}
		if !c.Oracle.HasFreeProjectSlot(cons.ID, title, date) {
			continue
		}
		pool = append(pool, cons)
	}
	sort.Slice(pool, func(i, j int) bool {
		ai := c.Store.ActiveCount(pool[i].ID, date)
		aj := c.Store.ActiveCount(pool[j].ID, date)
		if ai != aj {
			return ai < aj
		}
		return c.Workforce.LatestTitleID(pool[i].ID, date) > c.Workforce.LatestTitleID(pool[j].ID, date)
	})
	return pool
}

// availablePool ranks every employed consultant by (active_project_count
// ascending, title descending), used for team fill-in at creation and
// for the allocator's daily team top-up; PMs are picked by eligiblePMs
// instead (spec §9 Collections: "must be stably ordered ... before
// sampling").
func (c *Creator) availablePool(date calendar.Day, maxTitle config.TitleID) []*workforce.Consultant {
	var pool []*workforce.Consultant
	for _, cons := range c.Workforce.ConsultantsEmployedOn(date) {
		title := c.Workforce.LatestTitleID(cons.ID, date)
		if title > maxTitle {
			continue
		}
		if !c.Oracle.HasFreeProjectSlot(cons.ID, title, date) {
			continue
		}
		pool = append(pool, cons)
	}
	sort.Slice(pool, func(i, j int) bool {
		ai := c.Store.ActiveCount(pool[i].ID, date)
		aj := c.Store.ActiveCount(pool[j].ID, date)
		if ai != aj {
			return ai < aj
		}
		return c.Workforce.LatestTitleID(pool[i].ID, date) > c.Workforce.LatestTitleID(pool[j].ID, date)
	})
	return pool
}

func (c *Creator) createProject(pm *workforce.Consultant, today calendar.Day, ym calendar.YearMonth) error {
	if len(c.Clients) == 0 {
		return &simerr.EmptyPool{Pool: "Clients"}
	}
	pmTitle := c.Workforce.LatestTitleID(pm.ID, today)

	kind := KindFixed
	if c.Rng.Bool(0.5) {
		kind = KindTimeAndMaterial
	}

	createdAt := today.AddDays(-c.Rng.IntInRange(0, 15))
	simStart := calendar.StartOfYear(c.Config.HorizonStartYear)
	if createdAt.Before(simStart) {
		createdAt = simStart
	}

	businessUnitID := c.pickBusinessUnit(today)
	c.unitProjectsYTD[businessUnitID]++

	bucket := simrand.WeightedChoice(c.Rng, c.Config.ProjectDurationBuckets, bucketWeights(c.Config.ProjectDurationBuckets))
	durationMonths := c.Rng.IntInRange(bucket.MinMonths, bucket.MaxMonths)

	plannedStart := today.AddDays(c.Rng.IntInRange(0, 14))
	actualStart := plannedStart.AddDays(c.Rng.IntInRange(0, 7))
	plannedEnd := calendar.AddWorkingDays(plannedStart, durationMonths*21)

	teamSize := c.Rng.IntInRange(c.Config.MinTeamSize, c.Config.MaxTeamSize)

	c.projectSeq++
	projectID := fmt.Sprintf("proj-%s", uuid.NewString())

	members := c.selectTeam(pm, pmTitle, teamSize, today)

	workingDays := calendar.WorkingDaysBetween(plannedStart, plannedEnd)
	plannedHours := money.Hours(float64(workingDays) * float64(teamSize) * c.Config.AverageWorkingHoursPerDay)
	targetHours := plannedHours.MulFloat(targetHoursFactor(c.Rng))

	proj := Project{
		ID:             projectID,
		ClientID:       c.Clients[c.Rng.IntInRange(0, len(c.Clients)-1)],
		BusinessUnitID: businessUnitID,
		Name:           fmt.Sprintf("Engagement %d-%02d-%d", ym.Year, ym.Month, c.projectSeq),
		Kind:           kind,
		Status:         StatusNotStarted,
		PlannedStart:   plannedStart,
		PlannedEnd:     plannedEnd,
		ActualStart:    &actualStart,
		PlannedHours:   plannedHours,
		TargetHours:    targetHours,
		ActualHours:    money.Hours(0),
		CreatedAt:      createdAt,
	}

	deliverables := c.planDeliverables(projectID, plannedStart, plannedEnd, plannedHours, targetHours)
	c.financials(&proj, deliverables, pm, members)

	c.Store.AddProject(proj)
	for _, d := range deliverables {
		c.Store.AddDeliverable(d)
	}
	c.assignRoles(projectID, pm, members, actualStart)

	deliverableIDs := make([]string, len(deliverables))
	memberIDs := make([]string, 0, len(members)+1)
	memberIDs = append(memberIDs, pm.ID)
	for i, d := range deliverables {
		deliverableIDs[i] = d.ID
	}
	for _, m := range members {
		memberIDs = append(memberIDs, m.ID)
	}
	c.Store.UpdateMetadata(projectID, func(md *Metadata) {
		md.TeamMemberIDs = memberIDs
		md.TargetTeamSize = teamSize
		md.RemainingSlots = teamSize - len(memberIDs)
		md.DeliverableTargets = deliverableIDs
	})

	return nil
}

func bucketWeights(buckets []config.DurationBucket) []float64 {
	w := make([]float64, len(buckets))
	for i, b := range buckets {
		w[i] = b.Weight
	}
	return w
}

// targetHoursFactor implements the 10%/90% overrun-underrun split (spec §4.G.f).
func targetHoursFactor(rng *simrand.Source) float64 {
	if rng.Bool(0.10) {
		return rng.Uniform(0.80, 0.95)
	}
	return rng.Uniform(1.05, 1.30)
}

// pickBusinessUnit chooses the unit that best closes the gap between its
// share of employed consultants and its share of projects created so far
// this year (spec §4.G.b).
func (c *Creator) pickBusinessUnit(date calendar.Day) int {
	employedByUnit := map[int]int{}
	totalEmployed := 0
	for _, cons := range c.Workforce.ConsultantsEmployedOn(date) {
		employedByUnit[cons.BusinessUnitID]++
		totalEmployed++
	}
	if totalEmployed == 0 {
		return 1
	}
	totalProjectsYTD := 0
	for _, n := range c.unitProjectsYTD {
		totalProjectsYTD += n
	}

	bestUnit := 1
	bestGap := math.Inf(1)
	units := make([]int, 0, len(employedByUnit))
	for u := range employedByUnit {
		units = append(units, u)
	}
	sort.Ints(units)
	for _, u := range units {
		employeeShare := float64(employedByUnit[u]) / float64(totalEmployed)
		projectShare := 0.0
		if totalProjectsYTD > 0 {
			projectShare = float64(c.unitProjectsYTD[u]) / float64(totalProjectsYTD)
		}
		gap := math.Abs(employeeShare - projectShare)
		if gap < bestGap {
			bestGap = gap
			bestUnit = u
		}
	}
	return bestUnit
}

// selectTeam fills the remaining teamSize-1 slots (after the PM) by
// per-title target counts proportional to TitleDistributionTargets,
// skipping any candidate whose title exceeds the PM's (spec §4.G.e).
func (c *Creator) selectTeam(pm *workforce.Consultant, pmTitle config.TitleID, teamSize int, date calendar.Day) []*workforce.Consultant {
	remaining := teamSize - 1
	pool := c.availablePool(date, pmTitle)

	byTitle := map[config.TitleID][]*workforce.Consultant{}
	for _, cons := range pool {
		if cons.ID == pm.ID {
			continue
		}
		t := c.Workforce.LatestTitleID(cons.ID, date)
		byTitle[t] = append(byTitle[t], cons)
	}

	var members []*workforce.Consultant
	for _, t := range config.AllTitles {
		if t > pmTitle {
			continue
		}
		want := int(math.Round(float64(remaining) * c.Config.TitleDistributionTargets[t]))
		candidates := byTitle[t]
		if want > len(candidates) {
			want = len(candidates)
		}
		members = append(members, candidates[:want]...)
	}
	if len(members) > remaining {
		members = members[:remaining]
	}
	return members
}

func (c *Creator) assignRoles(projectID string, pm *workforce.Consultant, members []*workforce.Consultant, start calendar.Day) {
	c.Store.AddAssignment(ProjectTeamAssignment{ProjectID: projectID, ConsultantID: pm.ID, Role: RoleProjectManager, Start: start})
	c.Workforce.SetMostRecentAssignment(pm.ID, start)
	leads := 0
	for _, m := range members {
		role := RoleTeamMember
		title := c.Workforce.LatestTitleID(m.ID, start)
		if leads < c.Config.MaxTeamLeadsPerProject && title >= c.Config.TeamLeadMinTitle {
			role = RoleTeamLead
			leads++
		}
		c.Store.AddAssignment(ProjectTeamAssignment{ProjectID: projectID, ConsultantID: m.ID, Role: role, Start: start})
		c.Workforce.SetMostRecentAssignment(m.ID, start)
	}
}
