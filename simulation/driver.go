/*
Package simulation is the top-level driver (spec §2, §5): a strict
outer loop over years, months, and working days that runs the Workforce
Simulator once per year and the Project Creator/Daily Work
Allocator/State Advancer on their respective monthly and daily cadence.
The core is single-threaded and deterministic given (seed, config); the
driver is the only component that advances time, and it does so in a
fixed order so no step ever depends on a future day (spec §5).
*/
package simulation

import (
	"fmt"

	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/config"
	"github.com/FX93Y2/ConsultFirmDBMockup/project"
	"github.com/FX93Y2/ConsultFirmDBMockup/simerr"
	"github.com/FX93Y2/ConsultFirmDBMockup/simrand"
	"github.com/FX93Y2/ConsultFirmDBMockup/workforce"
)

// Summary is the structured, non-exception run report the core returns
// instead of raising across its public API (spec §7).
type Summary struct {
	Years           []workforce.YearSummary
	ProjectsCreated int
	ProjectsDone    int
	ProjectsCancelled int
	PayrollRecords  int
	ClippedDraws    int
	CapacityWarnings []string
}

// Driver owns the two stores, the two engines, and the shared PRNG.
type Driver struct {
	Config    *config.Config
	Rng       *simrand.Source
	Workforce *workforce.Store
	Projects  *project.Store

	wfSim     *workforce.Simulator
	creator   *project.Creator
	allocator *project.Allocator
	payroll   []workforce.PayrollRecord
}

// New constructs a Driver from a validated configuration.
func New(cfg *config.Config) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := simrand.New(cfg.Seed)
	wfStore := workforce.NewStore()
	projStore := project.NewStore()

	wfSim := workforce.NewSimulator(wfStore, cfg, rng)
	creator := project.NewCreator(projStore, wfStore, cfg, rng)
	allocator := project.NewAllocator(projStore, wfStore, cfg, rng, creator)

	return &Driver{
		Config:    cfg,
		Rng:       rng,
		Workforce: wfStore,
		Projects:  projStore,
		wfSim:     wfSim,
		creator:   creator,
		allocator: allocator,
	}, nil
}

// Run executes the full horizon and returns the structured summary
// (spec §7). A returned error is always fatal (a BadHistoryWrite from the
// workforce store or an EmptyPool from the project creator);
// CapacityExhausted conditions are recovered locally and only recorded in
// the summary.
func (d *Driver) Run() (Summary, error) {
	summary := Summary{}
	horizon := calendar.Horizon{StartYear: d.Config.HorizonStartYear, EndYear: d.Config.HorizonEndYear}

	if err := d.wfSim.Bootstrap(horizon.StartYear); err != nil {
		return summary, err
	}

	cumulativeGrowth := 0.0
	for _, year := range horizon.Years() {
		headcountStart := len(d.Workforce.ConsultantsEmployedOn(calendar.StartOfYear(year)))

		ySummary, err := d.wfSim.StepYear(year)
		if err != nil {
			return summary, err
		}
		summary.Years = append(summary.Years, ySummary)

		growth := d.Config.GrowthRate(year)
		cumulativeGrowth = (1+cumulativeGrowth)*(1+growth) - 1
		d.creator.PlanYear(year, headcountStart, cumulativeGrowth)

		for _, ym := range horizon.MonthsInYear(year) {
			if err := d.creator.StepMonth(ym.Start()); err != nil {
				if simerr.IsRecoverable(err) {
					summary.CapacityWarnings = append(summary.CapacityWarnings, err.Error())
				} else {
					return summary, err
				}
			}

			for _, day := range calendar.WorkingDaysInMonth(ym) {
				d.allocator.StepDay(day)
			}
			d.allocator.EmitMonthlyExpenses(ym)
		}

		d.allocator.ReconcileActiveCounts(calendar.EndOfYear(year))
	}

	for _, p := range d.Projects.AllProjects() {
		switch p.Status {
		case project.StatusCompleted:
			summary.ProjectsDone++
		case project.StatusCancelled:
			summary.ProjectsCancelled++
		}
	}
	summary.ProjectsCreated = len(d.Projects.AllProjects())

	d.payroll = workforce.DerivePayroll(d.Workforce, d.Rng)
	summary.PayrollRecords = len(d.payroll)

	return summary, nil
}

// Payroll returns the payroll records derived at the end of Run. Derived
// exactly once per run, since re-deriving would advance the shared PRNG
// and break the "same seed, same PayrollRecord set" contract (spec §8).
func (d *Driver) Payroll() []workforce.PayrollRecord {
	return d.payroll
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"years=%d projects_created=%d completed=%d cancelled=%d payroll_records=%d capacity_warnings=%d",
		len(s.Years), s.ProjectsCreated, s.ProjectsDone, s.ProjectsCancelled, s.PayrollRecords, len(s.CapacityWarnings),
	)
}
