package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"

	"precisionturn/plan"
)

// CreatePlan inserts a new plan with a fresh id and timestamps.
// The stored record is returned.
func (db *DB) CreatePlan(title string, status plan.Status, details plan.Details) (*plan.Plan, error) {
	if status == "" {
		status = plan.StatusDraft
	}
	if !plan.ValidStatus(status) {
		return nil, serr.New("invalid plan status: " + string(status))
	}

	now := time.Now().UTC().Format(time.RFC3339)
	p := &plan.Plan{
		ID:        uuid.NewString(),
		Title:     title,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
		Details:   details,
	}

	detailsJSON, err := json.Marshal(p.Details)
	if err != nil {
		return nil, serr.Wrap(err, "failed to marshal plan details")
	}

	_, err = db.Exec(`
		INSERT INTO plans (id, title, status, created_at, updated_at, details)
		VALUES (?, ?, ?, ?, ?, ?::JSON)
	`, p.ID, p.Title, string(p.Status), p.CreatedAt, p.UpdatedAt, string(detailsJSON))
	if err != nil {
		return nil, serr.Wrap(err, "failed to create plan")
	}

	logger.Info("Created plan", "id", p.ID, "title", p.Title)
	return p, nil
}

// GetPlan retrieves a plan by id. Returns nil when not found.
func (db *DB) GetPlan(id string) (*plan.Plan, error) {
	row := db.QueryRow(`
		SELECT id, title, status, created_at, updated_at, details
		FROM plans WHERE id = ?
	`, id)

	p, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, serr.Wrap(err, "failed to get plan", "id", id)
	}
	return p, nil
}

// ListPlans returns all plans, most recently updated first
func (db *DB) ListPlans() ([]*plan.Plan, error) {
	rows, err := db.Query(`
		SELECT id, title, status, created_at, updated_at, details
		FROM plans ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, serr.Wrap(err, "failed to list plans")
	}
	defer rows.Close()

	plans := make([]*plan.Plan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, serr.Wrap(err, "failed to scan plan row")
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// UpdatePlan applies a partial update and returns the stored record.
// Returns nil when the plan does not exist.
func (db *DB) UpdatePlan(id string, updates plan.Updates) (*plan.Plan, error) {
	p, err := db.GetPlan(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	if updates.Title != nil {
		p.Title = *updates.Title
	}
	if updates.Status != nil {
		if !plan.ValidStatus(*updates.Status) {
			return nil, serr.New("invalid plan status: " + string(*updates.Status))
		}
		p.Status = *updates.Status
	}
	if updates.Details != nil {
		p.Details = *updates.Details
	}
	p.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	detailsJSON, err := json.Marshal(p.Details)
	if err != nil {
		return nil, serr.Wrap(err, "failed to marshal plan details")
	}

	_, err = db.Exec(`
		UPDATE plans SET title = ?, status = ?, updated_at = ?, details = ?::JSON
		WHERE id = ?
	`, p.Title, string(p.Status), p.UpdatedAt, string(detailsJSON), id)
	if err != nil {
		return nil, serr.Wrap(err, "failed to update plan", "id", id)
	}

	logger.Info("Updated plan", "id", id, "status", string(p.Status))
	return p, nil
}

// DeletePlan removes a plan by id. Returns false when no row matched.
func (db *DB) DeletePlan(id string) (bool, error) {
	result, err := db.Exec(`DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return false, serr.Wrap(err, "failed to delete plan", "id", id)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, serr.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return false, nil
	}

	logger.Info("Deleted plan", "id", id)
	return true, nil
}

// rowScanner covers both sql.Row and sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlan(row rowScanner) (*plan.Plan, error) {
	var p plan.Plan
	var status, detailsJSON string

	err := row.Scan(&p.ID, &p.Title, &status, &p.CreatedAt, &p.UpdatedAt, &detailsJSON)
	if err != nil {
		return nil, err
	}

	p.Status = plan.Status(status)
	if err := json.Unmarshal([]byte(detailsJSON), &p.Details); err != nil {
		return nil, serr.Wrap(err, "failed to unmarshal plan details")
	}
	return &p, nil
}
