package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"permit-dashboard/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

var db *sql.DB

// InitDB opens the sqlite database and creates the schema.
func InitDB(dbPath string) error {
	var err error
	// _foreign_keys in the DSN enables the pragma on every pooled
	// connection, which the cascade deletes rely on.
	db, err = sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS datasets (
			id TEXT PRIMARY KEY,
			name TEXT,
			source TEXT,
			record_count INTEGER,
			status TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS permit_records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			dataset_id TEXT,
			year INTEGER,
			county TEXT,
			classification TEXT,
			job_value REAL,
			FOREIGN KEY (dataset_id) REFERENCES datasets(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			dataset_id TEXT,
			series TEXT,
			payload TEXT,
			created_at DATETIME,
			UNIQUE (dataset_id, series),
			FOREIGN KEY (dataset_id) REFERENCES datasets(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS dataset_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			dataset_id TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS compute_metrics (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			dataset_id TEXT,
			payload TEXT,
			created_at DATETIME
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveDataset registers a new dataset.
func SaveDataset(id, name, source string, recordCount int) error {
	now := time.Now().UTC()
	_, err := db.Exec(
		`INSERT INTO datasets (id, name, source, record_count, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, source, recordCount, "pending", now, now)
	return err
}

// UpdateDatasetStatus updates dataset status.
func UpdateDatasetStatus(id string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE datasets SET status = ?, updated_at = ? WHERE id = ?`, status, now, id)
	return err
}

// ListDatasets returns all datasets, newest first.
func ListDatasets() ([]model.Dataset, error) {
	rows, err := db.Query(
		`SELECT id, name, source, record_count, status, created_at, updated_at FROM datasets ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []model.Dataset
	for rows.Next() {
		var d model.Dataset
		if err := rows.Scan(&d.ID, &d.Name, &d.Source, &d.RecordCount, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}

// GetDataset fetches one dataset by id.
func GetDataset(id string) (model.Dataset, error) {
	var d model.Dataset
	err := db.QueryRow(
		`SELECT id, name, source, record_count, status, created_at, updated_at FROM datasets WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &d.Source, &d.RecordCount, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

// DeleteDataset removes a dataset and, via cascade, its records, snapshots
// and metrics.
func DeleteDataset(id string) error {
	_, err := db.Exec(`DELETE FROM datasets WHERE id = ?`, id)
	return err
}

// SaveRecords stores the coerced permit rows so a dataset can be recomputed
// without re-uploading.
func SaveRecords(datasetID string, records []model.PermitRecord) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO permit_records (dataset_id, year, county, classification, job_value) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(datasetID, r.Year, r.County, string(r.Classification), r.JobValue); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetRecords loads a dataset's permit rows in insertion order.
func GetRecords(datasetID string) ([]model.PermitRecord, error) {
	rows, err := db.Query(
		`SELECT year, county, classification, job_value FROM permit_records WHERE dataset_id = ? ORDER BY id`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.PermitRecord
	for rows.Next() {
		var r model.PermitRecord
		var class string
		if err := rows.Scan(&r.Year, &r.County, &class, &r.JobValue); err != nil {
			return nil, err
		}
		r.Classification = model.ParseClassification(class)
		records = append(records, r)
	}
	return records, rows.Err()
}

// SaveSnapshot stores one computed series as JSON, replacing any previous
// snapshot for the same series (last write wins).
func SaveSnapshot(datasetID, series string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s snapshot: %w", series, err)
	}

	now := time.Now().UTC()
	_, err = db.Exec(
		`INSERT INTO snapshots (dataset_id, series, payload, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (dataset_id, series) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at`,
		datasetID, series, string(data), now)
	return err
}

// GetSnapshot returns one stored series payload.
func GetSnapshot(datasetID, series string) (json.RawMessage, error) {
	var payload string
	err := db.QueryRow(
		`SELECT payload FROM snapshots WHERE dataset_id = ? AND series = ?`, datasetID, series).
		Scan(&payload)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(payload), nil
}

// SaveDatasetError records an error for a dataset.
func SaveDatasetError(datasetID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO dataset_errors (dataset_id, error_message, created_at) VALUES (?, ?, ?)`,
		datasetID, err.Error(), now)
	return e
}

// GetDatasetErrors lists recorded errors for a dataset, newest first.
func GetDatasetErrors(datasetID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(
		`SELECT error_message, created_at FROM dataset_errors WHERE dataset_id = ? ORDER BY created_at DESC`, datasetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errors []map[string]interface{}
	for rows.Next() {
		var msg string
		var createdAt time.Time
		if err := rows.Scan(&msg, &createdAt); err != nil {
			return nil, err
		}
		errors = append(errors, map[string]interface{}{
			"error":     msg,
			"createdAt": createdAt,
		})
	}
	return errors, rows.Err()
}

// SaveComputeMetrics stores one computation's metrics.
func SaveComputeMetrics(m model.ComputeMetrics) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO compute_metrics (dataset_id, payload, created_at) VALUES (?, ?, ?)`,
		m.DatasetID, string(data), now)
	return err
}

// GetComputeMetrics returns the latest metrics for a dataset.
func GetComputeMetrics(datasetID string) (json.RawMessage, error) {
	var payload string
	err := db.QueryRow(
		`SELECT payload FROM compute_metrics WHERE dataset_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		datasetID).Scan(&payload)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(payload), nil
}
