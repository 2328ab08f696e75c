/*
Package project owns the Project Store data model (spec §3: Project,
ProjectTeamAssignment, Deliverable, ConsultantDeliverable,
ProjectBillingRate, ProjectExpense) and the three engines that operate
over it: the Capacity Oracle (4.F), the Project Creator (4.G), and the
Daily Work Allocator + State Advancer (4.H/4.I).

The team-assignment shape is grounded on the teacher's
generic.PolicyAssignment: an entity-to-entity link with an effective
window and an IsActive(at) predicate, here specialized from
(employee, policy) to (consultant, project).
*/
package project

import (
	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
	"github.com/FX93Y2/ConsultFirmDBMockup/config"
	"github.com/FX93Y2/ConsultFirmDBMockup/money"
)

type ProjectKind string

const (
	KindFixed           ProjectKind = "fixed"
	KindTimeAndMaterial ProjectKind = "time_and_material"
)

type ProjectStatus string

const (
	StatusNotStarted ProjectStatus = "not_started"
	StatusInProgress ProjectStatus = "in_progress"
	StatusCompleted  ProjectStatus = "completed"
	StatusCancelled  ProjectStatus = "cancelled"
)

type Role string

const (
	RoleProjectManager Role = "project_manager"
	RoleTeamLead       Role = "team_lead"
	RoleTeamMember     Role = "team_member"
)

// ExpenseSchedule is one pre-generated, per-category, per-month expense
// amount computed at project creation time and disbursed as a
// ProjectExpense row when the simulation reaches that month (spec
// §4.G.h, §4.H.4).
type ExpenseSchedule struct {
	DeliverableID string
	Category      string
	Month         calendar.YearMonth
	Amount        money.Amount
	Billable      bool
}

// Metadata is the mutable simulation-only bookkeeping the teacher's
// source threads through ad-hoc documents (spec DESIGN NOTES); this
// repository promotes it to a typed field on Project instead, touched
// only in memory and flushed once at the end of the run.
type Metadata struct {
	TeamMemberIDs      []string
	TargetTeamSize     int
	RemainingSlots     int
	DeliverableTargets []string // deliverable ids, in planned order
	PredefinedExpenses []ExpenseSchedule
	EstimatedCost      money.Amount
	EstimatedRevenue   money.Amount
}

// Project is a time-bounded client engagement (spec §3). Created once by
// the Project Creator; never destroyed — Cancelled is a terminal status,
// not a deletion.
type Project struct {
	ID               string
	ClientID         string
	BusinessUnitID   int
	Name             string
	Kind             ProjectKind
	Status           ProjectStatus
	PlannedStart     calendar.Day
	PlannedEnd       calendar.Day
	ActualStart      *calendar.Day
	ActualEnd        *calendar.Day
	Price            *money.Amount // Fixed only
	EstimatedBudget  *money.Amount // T&M only
	PlannedHours     money.Amount
	TargetHours      money.Amount
	ActualHours      money.Amount
	ProgressPercent  int
	CreatedAt        calendar.Day
	Metadata         Metadata
}

// HasStarted reports whether the project has an actual start recorded.
func (p *Project) HasStarted() bool { return p.ActualStart != nil }

// IsTerminal reports whether the project is Completed or Cancelled.
func (p *Project) IsTerminal() bool {
	return p.Status == StatusCompleted || p.Status == StatusCancelled
}

// ProjectTeamAssignment links a consultant to a project for an open
// window (spec §3). Mirrors the teacher's PolicyAssignment.IsActive
// shape: a row is "open" (active-project-count increments) while End is
// nil.
type ProjectTeamAssignment struct {
	ProjectID    string
	ConsultantID string
	Role         Role
	Start        calendar.Day
	End          *calendar.Day
}

func (a ProjectTeamAssignment) IsOpen() bool { return a.End == nil }

// IsActiveOn mirrors generic.PolicyAssignment.IsActive: true while date
// falls within [Start, End-or-unbounded].
func (a ProjectTeamAssignment) IsActiveOn(date calendar.Day) bool {
	if date.Before(a.Start) {
		return false
	}
	if a.End != nil && date.After(*a.End) {
		return false
	}
	return true
}

type DeliverableStatus string

const (
	DeliverableNotStarted DeliverableStatus = "not_started"
	DeliverableInProgress DeliverableStatus = "in_progress"
	DeliverableCompleted  DeliverableStatus = "completed"
)

// Deliverable is a sub-unit of a project's planned-time partition (spec
// §3).
type Deliverable struct {
	ID              string
	ProjectID       string
	Name            string
	PlannedStart    calendar.Day
	ActualStart     *calendar.Day
	DueDate         calendar.Day
	SubmissionDate  *calendar.Day
	InvoicedDate    *calendar.Day // Fixed projects only
	Status          DeliverableStatus
	PlannedHours    money.Amount
	TargetHours     money.Amount
	ActualHours     money.Amount
	ProgressPercent int
	Price           *money.Amount // Fixed projects only
}

func (d *Deliverable) IsComplete() bool { return d.Status == DeliverableCompleted }

// ConsultantDeliverable is one daily time-charge row (spec §3).
type ConsultantDeliverable struct {
	ConsultantID  string
	DeliverableID string
	ProjectID     string
	Date          calendar.Day
	Hours         money.Amount
}

// ProjectBillingRate is an hourly rate for one title on a T&M project
// (spec §3), present for every title id 1..6.
type ProjectBillingRate struct {
	ProjectID string
	TitleID   config.TitleID
	Rate      money.Amount
}

// ProjectExpense is a disbursed, dated expense row (spec §3), emitted
// from a project's pre-generated ExpenseSchedule as the simulation
// reaches each scheduled month.
type ProjectExpense struct {
	ProjectID     string
	DeliverableID string
	Date          calendar.Day
	Amount        money.Amount
	Description   string
	Category      string
	IsBillable    bool
}
