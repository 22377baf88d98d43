package sqlite

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	"gasnet/internal/domain"
)

// timeLayout is the text form of stored timestamps
const timeLayout = time.RFC3339Nano

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// parseTime reads a stored timestamp
func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// nullToTimePtr parses a nullable stored timestamp
func nullToTimePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// formatTime renders a timestamp for storage
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// ============================================================================
// Checksum
// ============================================================================

// checksum returns the hex BLAKE2b-256 digest of the stored network body
func checksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ============================================================================
// Network Row Scanner
// ============================================================================

// networkRow holds all columns from a network query for scanning
type networkRow struct {
	ID          int64
	Name        string
	Description sql.NullString
	Fluid       sql.NullString
	Data        string
	Checksum    string
	CreatedAt   string
	UpdatedAt   sql.NullString
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match networkColumns order exactly:
// id, name, description, fluid, data, checksum, created_at, updated_at
func (r *networkRow) scanArgs() []any {
	return []any{
		&r.ID,          // 1
		&r.Name,        // 2
		&r.Description, // 3
		&r.Fluid,       // 4
		&r.Data,        // 5
		&r.Checksum,    // 6
		&r.CreatedAt,   // 7
		&r.UpdatedAt,   // 8
	}
}

// networkColumns returns the SELECT column list for network queries
const networkColumns = `id, name, description, fluid, data, checksum, created_at, updated_at`

// toDomain converts the scanned row to a domain.SavedNetwork
func (r *networkRow) toDomain() (*domain.SavedNetwork, error) {
	saved := &domain.SavedNetwork{
		ID:          r.ID,
		Name:        r.Name,
		Description: nullToString(r.Description),
		Checksum:    r.Checksum,
	}

	if err := json.Unmarshal([]byte(r.Data), &saved.Network); err != nil {
		return nil, fmt.Errorf("unmarshal network: %w", err)
	}
	if saved.Network.Nodes == nil {
		saved.Network.Nodes = []domain.Node{}
	}
	if saved.Network.Edges == nil {
		saved.Network.Edges = []domain.Edge{}
	}

	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	saved.CreatedAt = created

	saved.UpdatedAt, err = nullToTimePtr(r.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return saved, nil
}

// summaryRow holds the columns of a listing query
type summaryRow struct {
	ID          int64
	Name        string
	Description sql.NullString
	Fluid       sql.NullString
	CreatedAt   string
}

func (r *summaryRow) scanArgs() []any {
	return []any{&r.ID, &r.Name, &r.Description, &r.Fluid, &r.CreatedAt}
}

const summaryColumns = `id, name, description, fluid, created_at`

func (r *summaryRow) toDomain() (domain.NetworkSummary, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return domain.NetworkSummary{}, fmt.Errorf("parse created_at: %w", err)
	}
	return domain.NetworkSummary{
		ID:          r.ID,
		Name:        r.Name,
		Description: nullToString(r.Description),
		Fluid:       nullToString(r.Fluid),
		CreatedAt:   created,
	}, nil
}

// networkInsertArgs builds the INSERT arguments for a save request:
// name, description, fluid, data, checksum, created_at
func networkInsertArgs(req *domain.SaveRequest, now time.Time) ([]any, error) {
	data, err := json.Marshal(req.Network)
	if err != nil {
		return nil, fmt.Errorf("marshal network: %w", err)
	}

	return []any{
		req.Name,
		stringToNull(req.Description),
		stringToNull(req.Network.Fluid),
		string(data),
		checksum(data),
		formatTime(now),
	}, nil
}
