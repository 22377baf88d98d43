package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"gasnet/internal/domain"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// every connection to :memory: is a separate database
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	repo := &Repository{db: db, now: time.Now}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS networks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT,
		fluid TEXT,
		data JSON NOT NULL,
		checksum TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_networks_created ON networks(created_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// ListNetworks returns a summary of every saved network, oldest first
func (r *Repository) ListNetworks(ctx context.Context) ([]domain.NetworkSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+summaryColumns+` FROM networks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query networks: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.NetworkSummary, 0)
	for rows.Next() {
		var row summaryRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan network: %w", err)
		}
		s, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating networks: %w", err)
	}

	return summaries, nil
}

// GetNetwork retrieves a saved network by id; (nil, nil) when absent
func (r *Repository) GetNetwork(ctx context.Context, id int64) (*domain.SavedNetwork, error) {
	var row networkRow
	err := r.db.QueryRowContext(ctx, `
		SELECT `+networkColumns+`
		FROM networks WHERE id = ?
	`, id).Scan(row.scanArgs()...)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query network: %w", err)
	}

	return row.toDomain()
}

// CreateNetwork stores a network and returns its new id
func (r *Repository) CreateNetwork(ctx context.Context, req *domain.SaveRequest) (int64, error) {
	args, err := networkInsertArgs(req, r.now())
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO networks (name, description, fluid, data, checksum, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert network: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read network id: %w", err)
	}
	return id, nil
}

// DeleteNetwork removes a saved network
func (r *Repository) DeleteNetwork(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM networks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete network: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("network %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
