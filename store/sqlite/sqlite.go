/*
Package sqlite flushes a completed simulation run to a SQLite database
(spec §6: Persisted schema). The core runs entirely in memory
(workforce.Store, project.Store); this package is the one-shot batch
writer consulted at the very end of a run, grounded on the teacher's
store/sqlite: WAL-mode open, schema auto-migrated on New(), and batch
inserts wrapped in a single sql.Tx per Flush call (each call covers
every collection it writes) so a partial flush never leaves half a
collection written.

Two side-tables, ConsultantCustomData and ProjectCustomData, persist the
mutable simulation metadata (current title id, active project count,
team list, predefined expenses, etc.) as serialized JSON documents; per
spec §6 they are not part of the external contract and may be dropped
before hand-off to downstream report generators.
*/
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/FX93Y2/ConsultFirmDBMockup/config"
	"github.com/FX93Y2/ConsultFirmDBMockup/project"
	"github.com/FX93Y2/ConsultFirmDBMockup/workforce"
)

// Store writes a completed simulation run to a SQLite database.
type Store struct {
	db *sql.DB
}

// New opens (creating if necessary) a SQLite database at path and
// migrates its schema. Use ":memory:" for an ephemeral database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS title (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS business_unit (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS location (
		id TEXT PRIMARY KEY,
		locale TEXT NOT NULL,
		business_unit_id INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS client (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS consultant (
		id TEXT PRIMARY KEY,
		given_name TEXT NOT NULL,
		family_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		business_unit_id INTEGER NOT NULL,
		hire_year INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS consultant_title_history (
		consultant_id TEXT NOT NULL,
		title_id INTEGER NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT,
		event TEXT NOT NULL,
		salary TEXT NOT NULL,
		PRIMARY KEY (consultant_id, start_date)
	);
	CREATE TABLE IF NOT EXISTS payroll (
		consultant_id TEXT NOT NULL,
		effective_at TEXT NOT NULL,
		amount TEXT NOT NULL,
		PRIMARY KEY (consultant_id, effective_at)
	);
	CREATE TABLE IF NOT EXISTS project (
		id TEXT PRIMARY KEY,
		client_id TEXT NOT NULL,
		business_unit_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		status TEXT NOT NULL,
		planned_start TEXT NOT NULL,
		planned_end TEXT NOT NULL,
		actual_start TEXT,
		actual_end TEXT,
		price TEXT,
		estimated_budget TEXT,
		planned_hours TEXT NOT NULL,
		actual_hours TEXT NOT NULL,
		progress_percent INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS project_team (
		project_id TEXT NOT NULL,
		consultant_id TEXT NOT NULL,
		role TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT,
		PRIMARY KEY (project_id, consultant_id, start_date)
	);
	CREATE TABLE IF NOT EXISTS deliverable (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		name TEXT NOT NULL,
		planned_start TEXT NOT NULL,
		actual_start TEXT,
		due_date TEXT NOT NULL,
		submission_date TEXT,
		invoiced_date TEXT,
		status TEXT NOT NULL,
		planned_hours TEXT NOT NULL,
		actual_hours TEXT NOT NULL,
		progress_percent INTEGER NOT NULL,
		price TEXT
	);
	CREATE TABLE IF NOT EXISTS project_billing_rate (
		project_id TEXT NOT NULL,
		title_id INTEGER NOT NULL,
		rate TEXT NOT NULL,
		PRIMARY KEY (project_id, title_id)
	);
	CREATE TABLE IF NOT EXISTS consultant_deliverable (
		consultant_id TEXT NOT NULL,
		deliverable_id TEXT NOT NULL,
		project_id TEXT NOT NULL,
		date TEXT NOT NULL,
		hours TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS project_expense (
		project_id TEXT NOT NULL,
		deliverable_id TEXT NOT NULL,
		date TEXT NOT NULL,
		amount TEXT NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL,
		is_billable INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS consultant_custom_data (
		consultant_id TEXT PRIMARY KEY,
		data_json TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS project_custom_data (
		project_id TEXT PRIMARY KEY,
		data_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_title_history_consultant ON consultant_title_history(consultant_id);
	CREATE INDEX IF NOT EXISTS idx_deliverable_project ON deliverable(project_id);
	CREATE INDEX IF NOT EXISTS idx_consultant_deliverable_date ON consultant_deliverable(consultant_id, date);
	CREATE INDEX IF NOT EXISTS idx_project_expense_project ON project_expense(project_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// FlushWorkforce batch-writes every consultant and their title history.
// Consultants and title history are inserted in a single transaction so
// a crash mid-flush never leaves a consultant without its Hire row (spec
// §5: writes preserve within-collection ordering).
func (s *Store) FlushWorkforce(store *workforce.Store) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin workforce flush: %w", err)
	}
	defer tx.Rollback()

	for _, c := range store.AllConsultants() {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO consultant (id, given_name, family_name, email, phone, business_unit_id, hire_year)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.GivenName, c.FamilyName, c.Email, c.Phone, c.BusinessUnitID, c.HireYear,
		); err != nil {
			return fmt.Errorf("insert consultant %s: %w", c.ID, err)
		}

		customJSON, _ := json.Marshal(c.Metadata)
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO consultant_custom_data (consultant_id, data_json) VALUES (?, ?)`,
			c.ID, string(customJSON),
		); err != nil {
			return fmt.Errorf("insert consultant custom data %s: %w", c.ID, err)
		}

		for _, h := range store.History(c.ID) {
			var end any
			if h.End != nil {
				end = h.End.String()
			}
			if _, err := tx.Exec(
				`INSERT OR REPLACE INTO consultant_title_history
				 (consultant_id, title_id, start_date, end_date, event, salary)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				h.ConsultantID, int(h.TitleID), h.Start.String(), end, string(h.Event), h.Salary.Value.String(),
			); err != nil {
				return fmt.Errorf("insert title history %s: %w", c.ID, err)
			}
		}
	}

	return tx.Commit()
}

// FlushPayroll batch-writes derived payroll records.
func (s *Store) FlushPayroll(records []workforce.PayrollRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin payroll flush: %w", err)
	}
	defer tx.Rollback()

	for _, r := range records {
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO payroll (consultant_id, effective_at, amount) VALUES (?, ?, ?)`,
			r.ConsultantID, r.EffectiveAt.String(), r.Amount.Value.String(),
		); err != nil {
			return fmt.Errorf("insert payroll row: %w", err)
		}
	}
	return tx.Commit()
}

// FlushProjects batch-writes every project and its team assignments,
// deliverables, billing rates, time charges, and expenses (spec §5:
// team assignments before the consultant-deliverables that reference
// them is preserved by writing each project's full subtree in order).
func (s *Store) FlushProjects(store *project.Store) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin project flush: %w", err)
	}
	defer tx.Rollback()

	for _, p := range store.AllProjects() {
		if err := flushProject(tx, p); err != nil {
			return err
		}
		for _, a := range store.AssignmentsForProject(p.ID) {
			if err := flushAssignment(tx, a); err != nil {
				return err
			}
		}
		for _, d := range store.DeliverablesForProject(p.ID) {
			if err := flushDeliverable(tx, d); err != nil {
				return err
			}
		}
		for _, r := range store.BillingRates(p.ID) {
			if _, err := tx.Exec(
				`INSERT OR REPLACE INTO project_billing_rate (project_id, title_id, rate) VALUES (?, ?, ?)`,
				r.ProjectID, int(r.TitleID), r.Rate.Value.String(),
			); err != nil {
				return fmt.Errorf("insert billing rate %s: %w", p.ID, err)
			}
		}

		customJSON, _ := json.Marshal(p.Metadata)
		if _, err := tx.Exec(
			`INSERT OR REPLACE INTO project_custom_data (project_id, data_json) VALUES (?, ?)`,
			p.ID, string(customJSON),
		); err != nil {
			return fmt.Errorf("insert project custom data %s: %w", p.ID, err)
		}
	}

	for _, c := range store.AllCharges() {
		if _, err := tx.Exec(
			`INSERT INTO consultant_deliverable (consultant_id, deliverable_id, project_id, date, hours)
			 VALUES (?, ?, ?, ?, ?)`,
			c.ConsultantID, c.DeliverableID, c.ProjectID, c.Date.String(), c.Hours.Value.String(),
		); err != nil {
			return fmt.Errorf("insert consultant deliverable: %w", err)
		}
	}
	for _, e := range store.AllExpenses() {
		billable := 0
		if e.IsBillable {
			billable = 1
		}
		if _, err := tx.Exec(
			`INSERT INTO project_expense (project_id, deliverable_id, date, amount, description, category, is_billable)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ProjectID, e.DeliverableID, e.Date.String(), e.Amount.Value.String(), e.Description, e.Category, billable,
		); err != nil {
			return fmt.Errorf("insert project expense: %w", err)
		}
	}

	return tx.Commit()
}

func flushProject(tx *sql.Tx, p *project.Project) error {
	var actualStart, actualEnd, price, estimatedBudget any
	if p.ActualStart != nil {
		actualStart = p.ActualStart.String()
	}
	if p.ActualEnd != nil {
		actualEnd = p.ActualEnd.String()
	}
	if p.Price != nil {
		price = p.Price.Value.String()
	}
	if p.EstimatedBudget != nil {
		estimatedBudget = p.EstimatedBudget.Value.String()
	}
	_, err := tx.Exec(
		`INSERT OR REPLACE INTO project
		 (id, client_id, business_unit_id, name, kind, status, planned_start, planned_end,
		  actual_start, actual_end, price, estimated_budget, planned_hours, actual_hours,
		  progress_percent, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ClientID, p.BusinessUnitID, p.Name, string(p.Kind), string(p.Status),
		p.PlannedStart.String(), p.PlannedEnd.String(), actualStart, actualEnd, price, estimatedBudget,
		p.PlannedHours.Value.String(), p.ActualHours.Value.String(), p.ProgressPercent, p.CreatedAt.String(),
	)
	if err != nil {
		return fmt.Errorf("insert project %s: %w", p.ID, err)
	}
	return nil
}

func flushAssignment(tx *sql.Tx, a project.ProjectTeamAssignment) error {
	var end any
	if a.End != nil {
		end = a.End.String()
	}
	_, err := tx.Exec(
		`INSERT OR REPLACE INTO project_team (project_id, consultant_id, role, start_date, end_date)
		 VALUES (?, ?, ?, ?, ?)`,
		a.ProjectID, a.ConsultantID, string(a.Role), a.Start.String(), end,
	)
	if err != nil {
		return fmt.Errorf("insert assignment %s/%s: %w", a.ProjectID, a.ConsultantID, err)
	}
	return nil
}

func flushDeliverable(tx *sql.Tx, d *project.Deliverable) error {
	var actualStart, submission, invoiced, price any
	if d.ActualStart != nil {
		actualStart = d.ActualStart.String()
	}
	if d.SubmissionDate != nil {
		submission = d.SubmissionDate.String()
	}
	if d.InvoicedDate != nil {
		invoiced = d.InvoicedDate.String()
	}
	if d.Price != nil {
		price = d.Price.Value.String()
	}
	_, err := tx.Exec(
		`INSERT OR REPLACE INTO deliverable
		 (id, project_id, name, planned_start, actual_start, due_date, submission_date,
		  invoiced_date, status, planned_hours, actual_hours, progress_percent, price)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.ProjectID, d.Name, d.PlannedStart.String(), actualStart, d.DueDate.String(), submission,
		invoiced, string(d.Status), d.PlannedHours.Value.String(), d.ActualHours.Value.String(), d.ProgressPercent, price,
	)
	if err != nil {
		return fmt.Errorf("insert deliverable %s: %w", d.ID, err)
	}
	return nil
}

// SeedReferenceData inserts the reference rows the core reads by id
// only (spec §6: "Inputs from collaborators"). In production these
// would be inserted by an upstream seed-data generator before the
// simulator runs; this repository seeds a small fixed set so the
// standalone CLI produces a self-consistent database.
func (s *Store) SeedReferenceData(clientIDs []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, t := range config.AllTitles {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO title (id, name) VALUES (?, ?)`, int(t), titleName(t)); err != nil {
			return err
		}
	}
	for id, name := range map[int]string{1: "Alpha", 2: "Beta", 3: "Gamma", 4: "Delta"} {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO business_unit (id, name) VALUES (?, ?)`, id, name); err != nil {
			return err
		}
	}
	for i, id := range clientIDs {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO client (id, name) VALUES (?, ?)`, id, fmt.Sprintf("Client %d", i+1)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func titleName(t config.TitleID) string {
	switch t {
	case config.TitleAnalyst:
		return "Analyst"
	case config.TitleConsultant:
		return "Consultant"
	case config.TitleSeniorConsultant:
		return "Senior Consultant"
	case config.TitleManager:
		return "Manager"
	case config.TitleSeniorManager:
		return "Senior Manager"
	case config.TitlePartner:
		return "Partner"
	default:
		return "Unknown"
	}
}
