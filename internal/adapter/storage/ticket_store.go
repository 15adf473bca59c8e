// internal/adapter/storage/ticket_store.go

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"fixmate/internal/domain/ticket"
)

// ErrTicketNotFound is returned when an id has no row
var ErrTicketNotFound = errors.New("ticket not found")

// BackendTicket is a ticket row in the remote store's own vocabulary
// ("New"/"In Progress"/"Fixed", "Low"/"Medium"/"High"). The storemock
// serves rows verbatim; normalization happens in the dashboard on ingestion.
type BackendTicket struct {
	ID        string     `json:"ticket_id"`
	UserID    string     `json:"user_id"`
	UserName  string     `json:"userName,omitempty"`
	Category  string     `json:"category"`
	Severity  string     `json:"severity"`
	Status    string     `json:"status"`
	Notes     string     `json:"description"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Address   string     `json:"address,omitempty"`
	ImageURL  string     `json:"image_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TicketStore implements Postgres storage for the storemock backend
type TicketStore struct {
	db *pgxpool.Pool
}

// NewTicketStore creates a new ticket store
func NewTicketStore(db *pgxpool.Pool) *TicketStore {
	return &TicketStore{
		db: db,
	}
}

// EnsureSchema creates the tables the storemock needs
func (s *TicketStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tickets (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL DEFAULT '',
			user_name TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			severity TEXT NOT NULL DEFAULT 'Low',
			status TEXT NOT NULL DEFAULT 'New',
			description TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			address TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_tickets_category_status ON tickets (category, status);

		CREATE TABLE IF NOT EXISTS ticket_audit (
			id TEXT PRIMARY KEY,
			ticket_id TEXT NOT NULL REFERENCES tickets (id) ON DELETE CASCADE,
			old_status TEXT NOT NULL,
			new_status TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveTicket inserts or updates one ticket row
func (s *TicketStore) SaveTicket(ctx context.Context, t BackendTicket) error {
	query := `
		INSERT INTO tickets (
			id, user_id, user_name, category, severity, status,
			description, latitude, longitude, address, image_url,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13
		)
		ON CONFLICT (id) DO UPDATE
		SET
			user_id = $2,
			user_name = $3,
			category = $4,
			severity = $5,
			status = $6,
			description = $7,
			latitude = $8,
			longitude = $9,
			address = $10,
			image_url = $11,
			updated_at = $13
	`

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}

	_, err := s.db.Exec(
		ctx,
		query,
		t.ID,
		t.UserID,
		t.UserName,
		t.Category,
		t.Severity,
		t.Status,
		t.Notes,
		t.Latitude,
		t.Longitude,
		t.Address,
		t.ImageURL,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	return nil
}

// GetTicket retrieves one ticket by ID
func (s *TicketStore) GetTicket(ctx context.Context, id string) (*BackendTicket, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, user_name, category, severity, status,
		       description, latitude, longitude, address, image_url,
		       created_at, updated_at
		FROM tickets
		WHERE id = $1
	`, id)

	t, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("error scanning ticket: %w", err)
	}
	return t, nil
}

// ListTickets returns every ticket, oldest first
func (s *TicketStore) ListTickets(ctx context.Context) ([]BackendTicket, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, user_name, category, severity, status,
		       description, latitude, longitude, address, image_url,
		       created_at, updated_at
		FROM tickets
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var out []BackendTicket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning ticket: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// UpdateStatus moves one ticket to a new backend-vocabulary status and
// records the transition in the audit table.
func (s *TicketStore) UpdateStatus(ctx context.Context, id, newStatus string) (*BackendTicket, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var oldStatus string
	if err := tx.QueryRow(ctx, `SELECT status FROM tickets WHERE id = $1`, id).Scan(&oldStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("error reading current status: %w", err)
	}

	now := time.Now()
	if _, err := tx.Exec(ctx, `
		UPDATE tickets SET status = $2, updated_at = $3 WHERE id = $1
	`, id, newStatus, now); err != nil {
		return nil, fmt.Errorf("error updating status: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO ticket_audit (id, ticket_id, old_status, new_status, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.New().String(), id, oldStatus, newStatus, now); err != nil {
		return nil, fmt.Errorf("error writing audit row: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing transaction: %w", err)
	}
	return s.GetTicket(ctx, id)
}

// Stats aggregates ticket counts by category, severity and status
func (s *TicketStore) Stats(ctx context.Context) (total int, byCategory, bySeverity, byStatus map[string]int, err error) {
	byCategory = map[string]int{}
	bySeverity = map[string]int{}
	byStatus = map[string]int{}

	rows, err := s.db.Query(ctx, `SELECT category, severity, status FROM tickets`)
	if err != nil {
		return 0, nil, nil, nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category, severity, status string
		if err := rows.Scan(&category, &severity, &status); err != nil {
			return 0, nil, nil, nil, fmt.Errorf("error scanning row: %w", err)
		}
		total++
		byCategory[category]++
		bySeverity[severity]++
		byStatus[status]++
	}
	return total, byCategory, bySeverity, byStatus, rows.Err()
}

// LocationsBySeverity returns the coordinates of every located ticket at
// one severity level.
func (s *TicketStore) LocationsBySeverity(ctx context.Context, severity string) ([]ticket.Location, error) {
	rows, err := s.db.Query(ctx, `
		SELECT latitude, longitude
		FROM tickets
		WHERE severity = $1 AND latitude IS NOT NULL AND longitude IS NOT NULL
	`, severity)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var out []ticket.Location
	for rows.Next() {
		var loc ticket.Location
		if err := rows.Scan(&loc.Lat, &loc.Lng); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTicket(row rowScanner) (*BackendTicket, error) {
	var t BackendTicket
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.UserName,
		&t.Category,
		&t.Severity,
		&t.Status,
		&t.Notes,
		&t.Latitude,
		&t.Longitude,
		&t.Address,
		&t.ImageURL,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
