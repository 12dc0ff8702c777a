package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/solscan/internal/model"
)

// HistoryDB provides SQLite-based storage for privacy scan reports.
//
// Design decision: We use a single database file rather than one file per
// target. This keeps cross-target queries (listing all scanned targets,
// comparing scans) in one place and simplifies backup.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "solscan.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		target TEXT NOT NULL,
		target_type TEXT NOT NULL,
		scanned_at DATETIME NOT NULL,
		overall_risk TEXT NOT NULL,
		total_signals INTEGER NOT NULL,
		high_signals INTEGER NOT NULL,
		medium_signals INTEGER NOT NULL,
		low_signals INTEGER NOT NULL,
		transactions INTEGER NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scans_target ON scans(target);
	CREATE INDEX IF NOT EXISTS idx_scans_scanned_at ON scans(scanned_at);
	`
	_, err := hdb.db.Exec(schema)
	return err
}

// SaveReport persists one finished privacy report.
func (hdb *HistoryDB) SaveReport(ctx context.Context, report *model.PrivacyReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO scans (
		target, target_type, scanned_at, overall_risk,
		total_signals, high_signals, medium_signals, low_signals,
		transactions, report_json
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = hdb.db.ExecContext(ctx, query,
		report.Target,
		string(report.TargetType),
		report.Timestamp.UTC().Format(time.RFC3339Nano),
		report.OverallRisk.String(),
		report.Summary.TotalSignals,
		report.Summary.HighRiskSignals,
		report.Summary.MediumRiskSignals,
		report.Summary.LowRiskSignals,
		report.Summary.TransactionsAnalyzed,
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save scan report: %w", err)
	}
	return nil
}

// LatestReport retrieves the most recent report for a target.
// It returns nil without error when the target was never scanned.
func (hdb *HistoryDB) LatestReport(ctx context.Context, target string) (*model.PrivacyReport, error) {
	query := `
	SELECT report_json FROM scans
	WHERE target = ?
	ORDER BY scanned_at DESC
	LIMIT 1
	`
	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, query, target).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan report: %w", err)
	}

	var report model.PrivacyReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// LatestReports retrieves the most recent reports for a target,
// newest first, up to limit. A limit of zero or less means no limit.
func (hdb *HistoryDB) LatestReports(ctx context.Context, target string, limit int) ([]*model.PrivacyReport, error) {
	query := `
	SELECT report_json FROM scans
	WHERE target = ?
	ORDER BY scanned_at DESC
	`
	args := []any{target}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan reports: %w", err)
	}
	defer rows.Close()

	var reports []*model.PrivacyReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		var report model.PrivacyReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			return nil, fmt.Errorf("failed to parse report: %w", err)
		}
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}

// ReportByID retrieves one stored report by its database ID.
// It returns nil without error when the ID does not exist.
func (hdb *HistoryDB) ReportByID(ctx context.Context, id int64) (*model.PrivacyReport, error) {
	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, `SELECT report_json FROM scans WHERE id = ?`, id).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan report: %w", err)
	}

	var report model.PrivacyReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// ListTargets returns all scanned targets, sorted.
func (hdb *HistoryDB) ListTargets(ctx context.Context) ([]string, error) {
	rows, err := hdb.db.QueryContext(ctx, `SELECT DISTINCT target FROM scans ORDER BY target`)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	defer rows.Close()

	var targets []string
	for rows.Next() {
		var target string
		if err := rows.Scan(&target); err != nil {
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		targets = append(targets, target)
	}
	return targets, rows.Err()
}

// ScanMetadata summarizes one stored scan without the full report body.
type ScanMetadata struct {
	// ID is the unique identifier of the scan in the database.
	ID int64

	// Target is the scanned address or signature.
	Target string

	// ScannedAt is when the scan was performed.
	ScannedAt time.Time

	// OverallRisk is the stored risk level.
	OverallRisk string

	// TotalSignals is the stored signal count.
	TotalSignals int
}

// History retrieves scan metadata for a target, most recent first.
func (hdb *HistoryDB) History(ctx context.Context, target string) ([]ScanMetadata, error) {
	query := `
	SELECT id, target, scanned_at, overall_risk, total_signals
	FROM scans
	WHERE target = ?
	ORDER BY scanned_at DESC
	`
	rows, err := hdb.db.QueryContext(ctx, query, target)
	if err != nil {
		return nil, fmt.Errorf("failed to get scan history: %w", err)
	}
	defer rows.Close()

	var results []ScanMetadata
	for rows.Next() {
		var meta ScanMetadata
		var scannedAt string
		if err := rows.Scan(&meta.ID, &meta.Target, &scannedAt, &meta.OverallRisk, &meta.TotalSignals); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, scannedAt); err == nil {
			meta.ScannedAt = t
		}
		results = append(results, meta)
	}
	return results, rows.Err()
}
