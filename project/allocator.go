/*
allocator.go - the Daily Work Allocator (spec §4.H) and State Advancer
(spec §4.I). Runs once per working day after the Project Creator's
monthly step, distributing hours across active projects and advancing
project/deliverable state machines.
*/
package project

import (
	"math"

	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/config"
	"github.com/FX93Y2/ConsultFirmDBMockup/money"
	"github.com/FX93Y2/ConsultFirmDBMockup/simrand"
	"github.com/FX93Y2/ConsultFirmDBMockup/workforce"
)

// Allocator runs the per-working-day allocation and state-advancement
// step.
type Allocator struct {
	Store     *Store
	Workforce *workforce.Store
	Config    *config.Config
	Rng       *simrand.Source
	Oracle    *CapacityOracle
	Creator   *Creator // reused for the same-distribution team top-up rule
}

func NewAllocator(store *Store, wf *workforce.Store, cfg *config.Config, rng *simrand.Source, creator *Creator) *Allocator {
	return &Allocator{
		Store:     store,
		Workforce: wf,
		Config:    cfg,
		Rng:       rng,
		Oracle:    &CapacityOracle{Store: store, Config: cfg},
		Creator:   creator,
	}
}

// StepDay runs one working day of project simulation (spec §4.H).
func (a *Allocator) StepDay(date calendar.Day) {
	a.startProjects(date)
	a.topUpTeams(date)
	a.allocateWork(date)
	a.advanceProjectStates(date)
}

func (a *Allocator) startProjects(date calendar.Day) {
	for _, p := range a.Store.AllProjects() {
		if p.Status == StatusNotStarted && p.ActualStart != nil && p.ActualStart.BeforeOrEqual(date) {
			a.Store.SetStatus(p.ID, StatusInProgress)
		}
	}
}

// topUpTeams adds members to active projects whose current team size is
// below target, using the same selection rule as project creation
// (spec §4.G.e via §4.H.2).
func (a *Allocator) topUpTeams(date calendar.Day) {
	for _, p := range a.Store.ActiveProjectsOn(date) {
		openCount := 0
		for _, asn := range a.Store.AssignmentsForProject(p.ID) {
			if asn.IsActiveOn(date) {
				openCount++
			}
		}
		if openCount >= p.Metadata.TargetTeamSize {
			continue
		}
		pmTitle := a.pmTitle(p, date)
		need := p.Metadata.TargetTeamSize - openCount
		pool := a.Creator.availablePool(date, pmTitle)
		added := 0
		for _, cons := range pool {
			if added >= need {
				break
			}
			if a.isOnProject(p.ID, cons.ID, date) {
				continue
			}
			a.Store.AddAssignment(ProjectTeamAssignment{ProjectID: p.ID, ConsultantID: cons.ID, Role: RoleTeamMember, Start: date})
			a.Workforce.SetMostRecentAssignment(cons.ID, date)
			added++
		}
	}
}

func (a *Allocator) pmTitle(p *Project, date calendar.Day) config.TitleID {
	for _, asn := range a.Store.AssignmentsForProject(p.ID) {
		if asn.Role == RoleProjectManager {
			return a.Workforce.LatestTitleID(asn.ConsultantID, date)
		}
	}
	return config.TitlePartner
}

func (a *Allocator) isOnProject(projectID, consultantID string, date calendar.Day) bool {
	for _, asn := range a.Store.AssignmentsForProject(projectID) {
		if asn.ConsultantID == consultantID && asn.IsActiveOn(date) {
			return true
		}
	}
	return false
}

// allocateWork iterates active projects in a shuffled order, distributing
// work hours to team members against each project's deliverables in
// planned order (spec §4.H.3).
func (a *Allocator) allocateWork(date calendar.Day) {
	projects := a.Store.ActiveProjectsOn(date)
	simrand.Shuffle(a.Rng, projects)

	chargedToday := map[string]float64{}

	for _, p := range projects {
		members := a.teamOn(p.ID, date)
		for _, d := range a.Store.DeliverablesForProject(p.ID) {
			if d.IsComplete() || d.PlannedStart.After(date) {
				continue
			}
			if d.ActualStart == nil {
				dd := date
				d.ActualStart = &dd
				d.Status = DeliverableInProgress
			}
			remaining := d.TargetHours.Sub(d.ActualHours).Float64()
			if remaining <= 0 {
				continue
			}
			for _, consultantID := range members {
				if remaining <= 0 {
					break
				}
				title := a.Workforce.LatestTitleID(consultantID, date)
				cap := a.Config.MaxDailyHoursPerTitle[title]
				already := chargedToday[consultantID] + a.Store.DailyHours(consultantID, date)
				available := cap - already
				if available <= 0 {
					continue
				}
				if available > remaining {
					available = remaining
				}
				minPerProject := a.Config.MinDailyHoursPerProject[title]
				drawMax := available
				drawMin := minPerProject
				if drawMin > drawMax {
					drawMin = drawMax // ClippedDraw: cap below per-title minimum, clip silently
				}
				hours := a.Rng.Uniform(drawMin, drawMax)
				hours = money.Hours(hours).RoundHours().Float64()
				if hours <= 0 {
					continue
				}
				a.Store.AddCharge(ConsultantDeliverable{
					ConsultantID:  consultantID,
					DeliverableID: d.ID,
					ProjectID:     p.ID,
					Date:          date,
					Hours:         money.Hours(hours),
				})
				chargedToday[consultantID] += hours
				d.ActualHours = d.ActualHours.Add(money.Hours(hours))
				p.ActualHours = p.ActualHours.Add(money.Hours(hours))
				remaining -= hours
			}
			if d.TargetHours.Float64() > 0 {
				d.ProgressPercent = int(math.Min(100, math.Round(100*d.ActualHours.Float64()/d.TargetHours.Float64())))
			}
			if d.ActualHours.GreaterThanOrEqual(d.TargetHours) {
				d.Status = DeliverableCompleted
				sub := date
				d.SubmissionDate = &sub
				if p.Kind == KindFixed {
					inv := date.AddDays(a.Rng.IntInRange(1, 7))
					d.InvoicedDate = &inv
				}
			}
		}
	}
}

// teamOn returns the consultant ids with an open assignment on a project
// for date, ordered by assignment insertion (PM first, per §4.G.i).
func (a *Allocator) teamOn(projectID string, date calendar.Day) []string {
	var out []string
	for _, asn := range a.Store.AssignmentsForProject(projectID) {
		if asn.IsActiveOn(date) {
			out = append(out, asn.ConsultantID)
		}
	}
	return out
}

// EmitMonthlyExpenses disburses every pre-generated ExpenseSchedule row
// whose scheduled month equals ym, for every project (spec §4.H.4).
// Called by the driver at month end.
func (a *Allocator) EmitMonthlyExpenses(ym calendar.YearMonth) {
	for _, p := range a.Store.AllProjects() {
		for _, sched := range p.Metadata.PredefinedExpenses {
			if sched.Month != ym {
				continue
			}
			a.Store.AddExpense(ProjectExpense{
				ProjectID:     p.ID,
				DeliverableID: sched.DeliverableID,
				Date:          ym.End(),
				Amount:        sched.Amount,
				Description:   sched.Category + " expense",
				Category:      sched.Category,
				IsBillable:    sched.Billable,
			})
		}
	}
}

// advanceProjectStates is the State Advancer (spec §4.I): completes or
// cancels projects whose deliverables/hours satisfy the closure rules,
// closing team assignments and restoring freed capacity.
func (a *Allocator) advanceProjectStates(date calendar.Day) {
	for _, p := range a.Store.AllProjects() {
		if p.IsTerminal() {
			continue
		}
		deliverables := a.Store.DeliverablesForProject(p.ID)
		if len(deliverables) == 0 {
			continue
		}
		allComplete := true
		totalTarget, totalActual := 0.0, 0.0
		for _, d := range deliverables {
			if !d.IsComplete() {
				allComplete = false
			}
			totalTarget += d.TargetHours.Float64()
			totalActual += d.ActualHours.Float64()
		}
		if totalTarget > 0 {
			progress := int(math.Min(100, math.Floor(100*totalActual/totalTarget)))
			a.Store.SetProgress(p.ID, progress)
		}

		if allComplete && p.Status == StatusInProgress {
			a.Store.SetStatus(p.ID, StatusCompleted)
			a.closeProjectTeam(p.ID, date)
			continue
		}

		if p.ActualHours.IsZero() && p.ActualStart != nil && date.After(p.ActualStart.AddDays(a.Config.ProjectCancelAfterDays)) {
			a.Store.SetStatus(p.ID, StatusCancelled)
			a.closeProjectTeam(p.ID, date)
		}
	}
}

// closeProjectTeam closes every open assignment on a project and
// restores each freed consultant's active-project-count metadata.
func (a *Allocator) closeProjectTeam(projectID string, end calendar.Day) {
	p := a.Store.Project(projectID)
	if p != nil && p.Status == StatusCompleted {
		e := end
		p.ActualEnd = &e
	}
	for _, asn := range a.Store.AssignmentsForProject(projectID) {
		if asn.IsOpen() {
			a.Store.CloseAssignment(projectID, asn.ConsultantID, end)
			a.Workforce.SetActiveProjectCount(asn.ConsultantID, a.Store.ActiveCount(asn.ConsultantID, end.AddDays(1)))
		}
	}
}

// ReconcileActiveCounts re-derives every consultant's active-project
// count from ProjectTeamAssignments, the year-boundary consistency
// check required by §4.I.
func (a *Allocator) ReconcileActiveCounts(date calendar.Day) {
	for _, c := range a.Workforce.AllConsultants() {
		a.Workforce.SetActiveProjectCount(c.ID, a.Store.ActiveCount(c.ID, date))
	}
}
