package simulation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/transitflow/depotplan/core/model"
)

// SQLiteStore persists simulation results to a SQLite database for audit and
// later comparison.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS simulation_results (
        scenario_id TEXT PRIMARY KEY,
        ts INTEGER,
        record TEXT
    );
    CREATE TABLE IF NOT EXISTS applied_scenarios (
        scenario_id TEXT PRIMARY KEY,
        ts INTEGER,
        record TEXT
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Put upserts the result keyed by scenario id.
func (s *SQLiteStore) Put(ctx context.Context, res model.SimulationResult) error {
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO simulation_results (scenario_id, ts, record) VALUES (?, ?, ?)
         ON CONFLICT(scenario_id) DO UPDATE SET ts=excluded.ts, record=excluded.record`,
		res.ScenarioID, res.CreatedAt.Unix(), string(b))
	return err
}

// Get returns the stored result for the scenario id.
func (s *SQLiteStore) Get(ctx context.Context, scenarioID string) (model.SimulationResult, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM simulation_results WHERE scenario_id = ?`, scenarioID).Scan(&data)
	if err == sql.ErrNoRows {
		return model.SimulationResult{}, fmt.Errorf("%w: %s", ErrUnknownScenario, scenarioID)
	}
	if err != nil {
		return model.SimulationResult{}, err
	}
	var res model.SimulationResult
	if err := json.Unmarshal([]byte(data), &res); err != nil {
		return model.SimulationResult{}, fmt.Errorf("unmarshal result: %w", err)
	}
	return res, nil
}

// List returns all stored results ordered by creation time.
func (s *SQLiteStore) List(ctx context.Context) ([]model.SimulationResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM simulation_results ORDER BY ts`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []model.SimulationResult
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var res model.SimulationResult
		if err := json.Unmarshal([]byte(data), &res); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// PutApplied records the immutable applied marker.
func (s *SQLiteStore) PutApplied(ctx context.Context, rec model.AppliedRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO applied_scenarios (scenario_id, ts, record) VALUES (?, ?, ?)
         ON CONFLICT(scenario_id) DO NOTHING`,
		rec.ScenarioID, rec.AppliedAt.Unix(), string(b))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrAlreadyApplied, rec.ScenarioID)
	}
	return nil
}

// Applied returns the applied marker for the scenario, if any.
func (s *SQLiteStore) Applied(ctx context.Context, scenarioID string) (model.AppliedRecord, bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM applied_scenarios WHERE scenario_id = ?`, scenarioID).Scan(&data)
	if err == sql.ErrNoRows {
		return model.AppliedRecord{}, false, nil
	}
	if err != nil {
		return model.AppliedRecord{}, false, err
	}
	var rec model.AppliedRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return model.AppliedRecord{}, false, fmt.Errorf("unmarshal record: %w", err)
	}
	return rec, true, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }
