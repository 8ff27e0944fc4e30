package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventscheduler/internal/domain"
)

const participantColumns = `p.id, p.event_id, p.user_id, p.email, p.response_status, p.created_at, p.updated_at`

type eventParticipantRepository struct {
	DB *sql.DB
}

func NewEventParticipantRepository(db *sql.DB) domain.EventParticipantRepository {
	return &eventParticipantRepository{
		DB: db,
	}
}

// participantDest returns the participant and the Scan targets for participantColumns.
// finish must be called after a successful Scan.
func participantDest() (p *domain.EventParticipant, dest []any, finish func()) {
	p = &domain.EventParticipant{}
	var userID sql.NullString
	var status string
	dest = []any{&p.ID, &p.EventID, &userID, &p.Email, &status, &p.CreatedAt, &p.UpdatedAt}
	finish = func() {
		p.ResponseStatus = domain.ResponseStatus(status)
		if userID.Valid {
			p.UserID = &userID.String
		}
	}
	return p, dest, finish
}

func (r *eventParticipantRepository) Create(ctx context.Context, p *domain.EventParticipant) error {
	query := `
		INSERT INTO event_participants (event_id, user_id, email, response_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		p.EventID, p.UserID, p.Email, string(p.ResponseStatus), p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrAlreadyInvited
		}
		return err
	}
	return nil
}

func (r *eventParticipantRepository) Exists(ctx context.Context, eventID, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM event_participants WHERE event_id = $1 AND lower(email) = lower($2))`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, eventID, email).Scan(&exists)
	return exists, err
}

func (r *eventParticipantRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventParticipant, error) {
	query := `
		SELECT ` + participantColumns + `, u.id, u.email, u.full_name, u.avatar_url
		FROM event_participants p
		LEFT JOIN profiles u ON u.id = p.user_id
		WHERE p.event_id = $1
		ORDER BY p.created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	participants := make([]*domain.EventParticipant, 0)
	for rows.Next() {
		p, dest, finish := participantDest()
		var uID, uEmail, uName, uAvatar sql.NullString
		dest = append(dest, &uID, &uEmail, &uName, &uAvatar)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		finish()
		if uID.Valid {
			p.User = &domain.Profile{ID: uID.String, Email: uEmail.String}
			if uName.Valid {
				p.User.FullName = &uName.String
			}
			if uAvatar.Valid {
				p.User.AvatarURL = &uAvatar.String
			}
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *eventParticipantRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Invitation, error) {
	query := `
		SELECT ` + participantColumns + `,
			e.id, e.user_id, e.title, e.description, e.location, e.event_datetime, e.status, e.is_public, e.created_at, e.updated_at
		FROM event_participants p
		JOIN events e ON e.id = p.event_id
		WHERE lower(p.email) = lower($1)
		ORDER BY p.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	invitations := make([]*domain.Invitation, 0)
	for rows.Next() {
		p, dest, finish := participantDest()
		e := &domain.Event{}
		var desc, loc sql.NullString
		var status string
		dest = append(dest, &e.ID, &e.UserID, &e.Title, &desc, &loc, &e.EventDatetime, &status, &e.IsPublic, &e.CreatedAt, &e.UpdatedAt)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		finish()
		e.Status = domain.EventStatus(status)
		if desc.Valid {
			e.Description = &desc.String
		}
		if loc.Valid {
			e.Location = &loc.String
		}
		invitations = append(invitations, &domain.Invitation{Participant: p, Event: e})
	}
	return invitations, rows.Err()
}

func (r *eventParticipantRepository) CountByEmail(ctx context.Context, email string, status domain.ResponseStatus) (int, error) {
	query := `SELECT COUNT(*) FROM event_participants WHERE lower(email) = lower($1) AND response_status = $2`
	var n int
	err := r.DB.QueryRowContext(ctx, query, email, string(status)).Scan(&n)
	return n, err
}

func (r *eventParticipantRepository) UpdateResponse(ctx context.Context, id string, caller domain.Identity, status domain.ResponseStatus) (*domain.EventParticipant, error) {
	query := `
		UPDATE event_participants p
		SET response_status = $1, updated_at = NOW()
		WHERE p.id = $2 AND (p.user_id = $3 OR lower(p.email) = lower($4))
		RETURNING ` + participantColumns
	p, dest, finish := participantDest()
	if err := r.DB.QueryRowContext(ctx, query, string(status), id, caller.UserID, caller.Email).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	finish()
	return p, nil
}

func (r *eventParticipantRepository) Delete(ctx context.Context, ownerID, eventID, id string) (bool, error) {
	query := `
		DELETE FROM event_participants p
		USING events e
		WHERE p.id = $1 AND p.event_id = $2 AND e.id = p.event_id AND e.user_id = $3
	`
	result, err := r.DB.ExecContext(ctx, query, id, eventID, ownerID)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
