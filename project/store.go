/*
store.go - the Project Store (spec §4.E). Append-mostly, mirroring
workforce.Store: entities are created once and only their open-ended
fields (status, progress, actual hours/dates, assignment end dates) are
ever mutated afterward, matching the teacher's generic/store.go
append-ledger discipline generalized from a single ledger to a small
family of related entity collections.
*/
package project

import (
	"sync"

	"github.com/FX93Y2/ConsultFirmDBMockup/calendar"
)

// Store is the in-memory project roster: projects, team assignments,
// deliverables, time charges, billing rates, and expenses.
type Store struct {
	mu sync.RWMutex

	projects     map[string]*Project
	projectOrder []string

	assignments map[string][]ProjectTeamAssignment // by project id

	deliverables      map[string]*Deliverable
	deliverablesByProj map[string][]string // project id -> deliverable ids, planned order

	charges      []ConsultantDeliverable
	billingRates map[string][]ProjectBillingRate // by project id
	expenses     []ProjectExpense
}

func NewStore() *Store {
	return &Store{
		projects:           make(map[string]*Project),
		assignments:        make(map[string][]ProjectTeamAssignment),
		deliverables:       make(map[string]*Deliverable),
		deliverablesByProj: make(map[string][]string),
		billingRates:       make(map[string][]ProjectBillingRate),
	}
}

// AddProject appends a new project.
func (s *Store) AddProject(p Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	s.projects[p.ID] = &cp
	s.projectOrder = append(s.projectOrder, p.ID)
}

// Project returns the project by id, or nil.
func (s *Store) Project(id string) *Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects[id]
}

// AllProjects returns every project ever created, in creation order.
func (s *Store) AllProjects() []*Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Project, 0, len(s.projectOrder))
	for _, id := range s.projectOrder {
		out = append(out, s.projects[id])
	}
	return out
}

// SetStatus mutates a project's status.
func (s *Store) SetStatus(projectID string, status ProjectStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projects[projectID]; ok {
		p.Status = status
	}
}

// SetProgress mutates a project's progress percent.
func (s *Store) SetProgress(projectID string, percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projects[projectID]; ok {
		p.ProgressPercent = percent
	}
}

// AddAssignment appends an open (or closed) team assignment for a project.
func (s *Store) AddAssignment(a ProjectTeamAssignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[a.ProjectID] = append(s.assignments[a.ProjectID], a)
}

// CloseAssignment sets the end date on a consultant's open assignment
// for a project.
func (s *Store) CloseAssignment(projectID, consultantID string, end calendar.Day) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.assignments[projectID]
	for i := range rows {
		if rows[i].ConsultantID == consultantID && rows[i].IsOpen() {
			e := end
			rows[i].End = &e
		}
	}
}

// AssignmentsForProject returns every assignment (open or closed) for a project.
func (s *Store) AssignmentsForProject(projectID string) []ProjectTeamAssignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ProjectTeamAssignment, len(s.assignments[projectID]))
	copy(out, s.assignments[projectID])
	return out
}

// OpenAssignments returns a consultant's currently-open team assignments
// on a given date (spec §4.E: open_assignments).
func (s *Store) OpenAssignments(consultantID string, date calendar.Day) []ProjectTeamAssignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ProjectTeamAssignment
	for _, rows := range s.assignments {
		for _, a := range rows {
			if a.ConsultantID == consultantID && a.IsActiveOn(date) {
				out = append(out, a)
			}
		}
	}
	return out
}

// ActiveCount returns the distinct count of projects with an open
// assignment for a consultant on a given date (spec §4.E: active_count).
func (s *Store) ActiveCount(consultantID string, date calendar.Day) int {
	return len(s.OpenAssignments(consultantID, date))
}

// DailyHours returns the sum of a consultant's ConsultantDeliverable
// hours already charged on a given date (spec §4.E: daily_hours).
func (s *Store) DailyHours(consultantID string, date calendar.Day) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, c := range s.charges {
		if c.ConsultantID == consultantID && c.Date.Equal(date) {
			total += c.Hours.Float64()
		}
	}
	return total
}

// ActiveProjectsOn returns every project whose status is InProgress, or
// NotStarted with an actual start on or before date (spec §4.E:
// active_projects_on).
func (s *Store) ActiveProjectsOn(date calendar.Day) []*Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Project
	for _, id := range s.projectOrder {
		p := s.projects[id]
		switch p.Status {
		case StatusInProgress:
			out = append(out, p)
		case StatusNotStarted:
			if p.ActualStart != nil && p.ActualStart.BeforeOrEqual(date) {
				out = append(out, p)
			}
		}
	}
	return out
}

// AddDeliverable appends a deliverable and records its project ordering.
func (s *Store) AddDeliverable(d Deliverable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := d
	s.deliverables[d.ID] = &cp
	s.deliverablesByProj[d.ProjectID] = append(s.deliverablesByProj[d.ProjectID], d.ID)
}

// Deliverable returns a deliverable by id, or nil.
func (s *Store) Deliverable(id string) *Deliverable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deliverables[id]
}

// DeliverablesForProject returns a project's deliverables in planned order.
func (s *Store) DeliverablesForProject(projectID string) []*Deliverable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.deliverablesByProj[projectID]
	out := make([]*Deliverable, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.deliverables[id])
	}
	return out
}

// AddCharge appends a ConsultantDeliverable time-charge row.
func (s *Store) AddCharge(c ConsultantDeliverable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.charges = append(s.charges, c)
}

// AllCharges returns every time-charge row ever written.
func (s *Store) AllCharges() []ConsultantDeliverable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ConsultantDeliverable, len(s.charges))
	copy(out, s.charges)
	return out
}

// SetBillingRates writes the full set of per-title billing rates for a
// T&M project (spec §3: exactly one row per title id 1..6).
func (s *Store) SetBillingRates(projectID string, rates []ProjectBillingRate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.billingRates[projectID] = rates
}

// BillingRates returns a project's billing rates.
func (s *Store) BillingRates(projectID string) []ProjectBillingRate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ProjectBillingRate, len(s.billingRates[projectID]))
	copy(out, s.billingRates[projectID])
	return out
}

// AddExpense appends a disbursed expense row.
func (s *Store) AddExpense(e ProjectExpense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
}

// AllExpenses returns every disbursed expense row.
func (s *Store) AllExpenses() []ProjectExpense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ProjectExpense, len(s.expenses))
	copy(out, s.expenses)
	return out
}

// UpdateMetadata replaces a project's mutable metadata.
func (s *Store) UpdateMetadata(projectID string, fn func(*Metadata)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.projects[projectID]; ok {
		fn(&p.Metadata)
	}
}
