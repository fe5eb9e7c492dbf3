// Package store persists meeting records in PostgreSQL.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/otherjamesbrown/minuted/pkg/deadlines"
	pferrors "github.com/otherjamesbrown/minuted/pkg/errors"
)

// List and search bounds, matching the original behavior.
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
	SearchLimit      = 20
)

// Meeting is a persisted meeting record.
//
// Records are immutable once created; UpdatedAt is informational only.
type Meeting struct {
	ID         string           `json:"id"`
	Filename   string           `json:"filename"`
	Transcript string           `json:"transcript"`
	Summary    string           `json:"summary"`
	Deadlines  []deadlines.Item `json:"deadlines"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Statistics aggregates the stored meetings.
type Statistics struct {
	TotalMeetings              int     `json:"total_meetings"`
	TotalDeadlines             int     `json:"total_deadlines"`
	AverageDeadlinesPerMeeting float64 `json:"average_deadlines_per_meeting"`
}

// Store provides meeting record persistence backed by a pgx pool.
// The pool is safe for concurrent use; Store adds no locking of its own.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store on top of an existing connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Insert persists a new meeting record and returns its assigned id.
// Transcript and summary must both be non-empty; an empty deadline list is legal.
func (s *Store) Insert(ctx context.Context, m *Meeting) (string, error) {
	if strings.TrimSpace(m.Filename) == "" {
		return "", fmt.Errorf("%w: filename is required", pferrors.ErrValidation)
	}
	if strings.TrimSpace(m.Transcript) == "" || strings.TrimSpace(m.Summary) == "" {
		return "", fmt.Errorf("%w: transcript and summary must be non-empty", pferrors.ErrValidation)
	}

	items := m.Deadlines
	if items == nil {
		items = []deadlines.Item{}
	}
	deadlinesJSON, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal deadlines: %w", err)
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	_, err = s.pool.Exec(ctx, `
		INSERT INTO meetings (id, filename, transcript, summary, deadlines, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		id, m.Filename, m.Transcript, m.Summary, deadlinesJSON, now)
	if err != nil {
		return "", fmt.Errorf("insert meeting: %w", err)
	}

	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now
	return id, nil
}

// List returns meetings in reverse-chronological order.
// Limit defaults to DefaultListLimit and is capped at MaxListLimit.
func (s *Store) List(ctx context.Context, limit, skip int) ([]Meeting, error) {
	limit, skip = clampPage(limit, skip)

	rows, err := s.pool.Query(ctx, `
		SELECT id, filename, transcript, summary, deadlines, created_at, updated_at
		FROM meetings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	return scanMeetings(rows)
}

// Get fetches a single meeting by id.
func (s *Store) Get(ctx context.Context, id string) (*Meeting, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, filename, transcript, summary, deadlines, created_at, updated_at
		FROM meetings WHERE id = $1`, id)

	m, err := scanMeeting(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("meeting %s: %w", id, pferrors.ErrNotFound)
		}
		return nil, fmt.Errorf("get meeting: %w", err)
	}
	return m, nil
}

// Search finds meetings whose filename, summary, or transcript contains the
// query, case-insensitively. Results are reverse-chronological and capped at
// SearchLimit.
func (s *Store) Search(ctx context.Context, query string) ([]Meeting, error) {
	pattern := "%" + escapeLike(query) + "%"

	rows, err := s.pool.Query(ctx, `
		SELECT id, filename, transcript, summary, deadlines, created_at, updated_at
		FROM meetings
		WHERE filename ILIKE $1 OR summary ILIKE $1 OR transcript ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2`, pattern, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search meetings: %w", err)
	}
	defer rows.Close()

	return scanMeetings(rows)
}

// Delete removes a meeting by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("meeting %s: %w", id, pferrors.ErrNotFound)
	}
	return nil
}

// Stats returns aggregate statistics over all stored meetings.
func (s *Store) Stats(ctx context.Context) (*Statistics, error) {
	var total, totalDeadlines int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(jsonb_array_length(deadlines)), 0)
		FROM meetings`).Scan(&total, &totalDeadlines)
	if err != nil {
		return nil, fmt.Errorf("meeting statistics: %w", err)
	}

	return &Statistics{
		TotalMeetings:              total,
		TotalDeadlines:             totalDeadlines,
		AverageDeadlinesPerMeeting: average(totalDeadlines, total),
	}, nil
}

// clampPage normalizes list pagination parameters.
func clampPage(limit, skip int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if skip < 0 {
		skip = 0
	}
	return limit, skip
}

// average guards the empty-store case: no meetings means average 0.
func average(deadlineCount, meetingCount int) float64 {
	if meetingCount == 0 {
		return 0
	}
	return float64(deadlineCount) / float64(meetingCount)
}

// escapeLike escapes LIKE wildcards so user queries match literally.
func escapeLike(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(q)
}

func scanMeetings(rows pgx.Rows) ([]Meeting, error) {
	meetings := []Meeting{}
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meetings: %w", err)
	}
	return meetings, nil
}

func scanMeeting(row pgx.Row) (*Meeting, error) {
	var m Meeting
	var deadlinesJSON []byte

	if err := row.Scan(&m.ID, &m.Filename, &m.Transcript, &m.Summary, &deadlinesJSON, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(deadlinesJSON, &m.Deadlines); err != nil {
		return nil, fmt.Errorf("unmarshal deadlines: %w", err)
	}
	if m.Deadlines == nil {
		m.Deadlines = []deadlines.Item{}
	}
	return &m, nil
}
