package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventscheduler/internal/domain"
)

const profileColumns = `id, email, full_name, avatar_url, password_hash, salt, created_at, updated_at`

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{DB: db}
}

func scanProfile(row scanner) (*domain.Profile, error) {
	p := &domain.Profile{}
	var fullName, avatarURL sql.NullString
	if err := row.Scan(&p.ID, &p.Email, &fullName, &avatarURL, &p.PasswordHash, &p.Salt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if fullName.Valid {
		p.FullName = &fullName.String
	}
	if avatarURL.Valid {
		p.AvatarURL = &avatarURL.String
	}
	return p, nil
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (email, full_name, password_hash, salt, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, p.Email, p.FullName, p.PasswordHash, p.Salt, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE lower(email) = lower($1)`
	return scanProfile(r.DB.QueryRowContext(ctx, query, email))
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.DB.QueryRowContext(ctx, query, id))
}

// Update writes the mutable fields. COALESCE keeps columns whose update value is NULL.
func (r *profileRepository) Update(ctx context.Context, id string, u domain.ProfileUpdate) (*domain.Profile, error) {
	query := `
		UPDATE profiles
		SET full_name = COALESCE($1, full_name), avatar_url = COALESCE($2, avatar_url), updated_at = NOW()
		WHERE id = $3
		RETURNING ` + profileColumns
	return scanProfile(r.DB.QueryRowContext(ctx, query, u.FullName, u.AvatarURL, id))
}
