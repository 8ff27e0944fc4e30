package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventscheduler/internal/domain"
)

const eventColumns = `id, user_id, title, description, location, event_datetime, status, is_public, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row scanner) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull, locNull sql.NullString
	var status string
	if err := row.Scan(
		&e.ID, &e.UserID, &e.Title, &descNull, &locNull, &e.EventDatetime,
		&status, &e.IsPublic, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.Status = domain.EventStatus(status)
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if locNull.Valid {
		e.Location = &locNull.String
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (user_id, title, description, location, event_datetime, status, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.UserID, e.Title, e.Description, e.Location, e.EventDatetime,
		string(e.Status), e.IsPublic, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// ownerFilter translates an EventFilter into predicates, always scoped to ownerID.
func ownerFilter(ownerID string, f domain.EventFilter) *predicates {
	p := &predicates{}
	p.add("user_id = $%d", ownerID)
	if f.PublicOnly {
		p.addRaw("is_public = TRUE")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p.add(`title ILIKE $%d`, containsPattern(s))
	}
	if f.Status != "" {
		p.add("status = $%d", string(f.Status))
	}
	if l := strings.TrimSpace(f.Location); l != "" {
		p.add(`location ILIKE $%d`, containsPattern(l))
	}
	if f.StartDate != nil {
		p.add("event_datetime >= $%d", *f.StartDate)
	}
	if f.EndDate != nil {
		p.add("event_datetime <= $%d", *f.EndDate)
	}
	return p
}

func (r *eventRepository) ListByOwner(ctx context.Context, ownerID string, f domain.EventFilter) ([]*domain.Event, error) {
	p := ownerFilter(ownerID, f)
	query := `SELECT ` + eventColumns + ` FROM events ` + p.where() + ` ORDER BY event_datetime ASC`
	args := p.args
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", p.next())
		args = append(args, f.Limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) CountByOwner(ctx context.Context, ownerID string, f domain.EventFilter) (int, error) {
	p := ownerFilter(ownerID, f)
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events `+p.where(), p.args...).Scan(&n)
	return n, err
}

func (r *eventRepository) IsOwnedBy(ctx context.Context, id, ownerID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1 AND user_id = $2)`
	var owned bool
	err := r.DB.QueryRowContext(ctx, query, id, ownerID).Scan(&owned)
	return owned, err
}

func (r *eventRepository) getOwned(ctx context.Context, ownerID, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND user_id = $2`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, ownerID, id string, u domain.EventUpdate) (*domain.Event, error) {
	if u.IsEmpty() {
		// Nothing to change; still enforce ownership.
		return r.getOwned(ctx, ownerID, id)
	}
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	set := func(column string, v any) {
		args = append(args, v)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if u.Title != nil {
		set("title", strings.TrimSpace(*u.Title))
	}
	if u.Description != nil {
		set("description", *u.Description)
	}
	if u.Location != nil {
		set("location", *u.Location)
	}
	if u.EventDatetime != nil {
		set("event_datetime", *u.EventDatetime)
	}
	if u.Status != nil {
		set("status", string(*u.Status))
	}
	if u.IsPublic != nil {
		set("is_public", *u.IsPublic)
	}
	args = append(args, id, ownerID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), len(args)-1, len(args), eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	query := `DELETE FROM events WHERE id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
