package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/swarmforge/swarm/pkg/models"
)

// Run is a persisted orchestration run.
type Run struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Domain      string     `json:"domain"`
	Technology  string     `json:"technology"`
	PhaseCount  int        `json:"phase_count"`
	TotalUnits  int        `json:"total_units"`
	Succeeded   int        `json:"succeeded"`
	Failed      int        `json:"failed"`
	Score       int        `json:"score"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at"`
}

// UnitRecord is a persisted unit outcome belonging to a run.
type UnitRecord struct {
	UnitID      string `json:"unit_id"`
	RunID       string `json:"run_id"`
	Type        string `json:"type"`
	Subtype     string `json:"subtype"`
	Description string `json:"description"`
	Phase       int    `json:"phase"`
	Success     bool   `json:"success"`
	OutputChars int    `json:"output_chars"`
	Error       string `json:"error"`
}

// BuildRunRecord converts an orchestration result into storable records.
func BuildRunRecord(id, description string, tctx models.TaskContext, plan *models.ExecutionPlan, results *models.ResultSet, report *models.Report) (*Run, []UnitRecord) {
	run := &Run{
		ID:          id,
		Description: description,
		Domain:      tctx.Domain,
		Technology:  tctx.TechnologyHint,
		StartedAt:   results.StartedAt,
	}
	if !results.FinishedAt.IsZero() {
		t := results.FinishedAt
		run.FinishedAt = &t
	}
	if plan != nil {
		run.PhaseCount = plan.PhaseCount()
		run.TotalUnits = len(plan.Units)
	}
	run.Succeeded = len(results.Succeeded())
	run.Failed = len(results.Failed())
	if report != nil {
		run.Score = report.Validation.Score
	}

	records := make([]UnitRecord, 0, len(results.Outcomes))
	for _, o := range results.Outcomes {
		rec := UnitRecord{
			UnitID:      o.Unit.ID,
			RunID:       id,
			Type:        string(o.Unit.Type),
			Subtype:     o.Unit.Subtype,
			Description: o.Unit.Description,
			Phase:       o.Phase,
			Success:     o.Success,
			OutputChars: len(o.Output),
		}
		if o.Err != "" {
			rec.Error = o.Err
		}
		records = append(records, rec)
	}

	return run, records
}

// SaveRun persists a run and its unit outcomes atomically.
func (db *DB) SaveRun(run *Run, units []UnitRecord) error {
	return db.Transaction(func(tx *sql.Tx) error {
		var finishedAt *string
		if run.FinishedAt != nil {
			s := formatTime(*run.FinishedAt)
			finishedAt = &s
		}

		_, err := tx.Exec(`
			INSERT INTO runs (id, description, domain, technology, phase_count, total_units, succeeded, failed, score, started_at, finished_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, run.ID, run.Description, run.Domain, run.Technology, run.PhaseCount, run.TotalUnits,
			run.Succeeded, run.Failed, run.Score, formatTime(run.StartedAt), finishedAt)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		for _, u := range units {
			_, err := tx.Exec(`
				INSERT INTO unit_outcomes (unit_id, run_id, type, subtype, description, phase, success, output_chars, error)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, u.UnitID, u.RunID, u.Type, u.Subtype, u.Description, u.Phase, u.Success, u.OutputChars, u.Error)
			if err != nil {
				return fmt.Errorf("insert unit outcome: %w", err)
			}
		}

		return nil
	})
}

// GetRun retrieves a run by ID. Returns nil if the run does not exist.
func (db *DB) GetRun(id string) (*Run, error) {
	row := db.QueryRow(`
		SELECT id, description, domain, technology, phase_count, total_units, succeeded, failed, score, started_at, finished_at
		FROM runs WHERE id = ?
	`, id)

	var r Run
	var startedAt string
	var finishedAt sql.NullString
	err := row.Scan(&r.ID, &r.Description, &r.Domain, &r.Technology, &r.PhaseCount, &r.TotalUnits,
		&r.Succeeded, &r.Failed, &r.Score, &startedAt, &finishedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}

	r.StartedAt, _ = parseTime(startedAt)
	r.FinishedAt = parseNullableTime(finishedAt)
	return &r, nil
}

// ListRuns lists the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT id, description, domain, technology, phase_count, total_units, succeeded, failed, score, started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		var finishedAt sql.NullString
		if err := rows.Scan(&r.ID, &r.Description, &r.Domain, &r.Technology, &r.PhaseCount, &r.TotalUnits,
			&r.Succeeded, &r.Failed, &r.Score, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, _ = parseTime(startedAt)
		r.FinishedAt = parseNullableTime(finishedAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListUnitOutcomes lists the stored unit outcomes for a run.
func (db *DB) ListUnitOutcomes(runID string) ([]UnitRecord, error) {
	rows, err := db.Query(`
		SELECT unit_id, run_id, type, subtype, description, phase, success, output_chars, error
		FROM unit_outcomes WHERE run_id = ? ORDER BY phase, unit_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list unit outcomes: %w", err)
	}
	defer rows.Close()

	var records []UnitRecord
	for rows.Next() {
		var u UnitRecord
		var errText sql.NullString
		if err := rows.Scan(&u.UnitID, &u.RunID, &u.Type, &u.Subtype, &u.Description, &u.Phase,
			&u.Success, &u.OutputChars, &errText); err != nil {
			return nil, fmt.Errorf("scan unit outcome: %w", err)
		}
		u.Error = errText.String
		records = append(records, u)
	}
	return records, rows.Err()
}
