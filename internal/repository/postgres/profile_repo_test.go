package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"eventscheduler/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var profileRowColumns = []string{"id", "email", "full_name", "avatar_url", "password_hash", "salt", "created_at", "updated_at"}

func TestProfileRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		errIs   error
		wantErr bool
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO profiles \(email, full_name, password_hash, salt, created_at, updated_at\)`).
					WithArgs("alice@example.com", "Alice", "hash", "salt", created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("user-uuid-1"))
			},
			wantID: "user-uuid-1",
		},
		{
			name: "unique violation returns ErrDuplicateEmail",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO profiles`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateEmail,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO profiles`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewProfileRepository(db)
			p := domain.NewProfile("alice@example.com", strPtr("Alice"), "hash", "salt", created)
			err = repo.Create(ctx, p)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, p.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProfileRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .* FROM profiles WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("Alice@Example.com").
		WillReturnRows(sqlmock.NewRows(profileRowColumns).
			AddRow("user-1", "alice@example.com", nil, "https://img/a.png", "hash", "salt", created, created))
	mock.ExpectQuery(`SELECT .* FROM profiles WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	repo := NewProfileRepository(db)
	p, err := repo.GetByEmail(context.Background(), "Alice@Example.com")
	require.NoError(t, err)
	require.Equal(t, "user-1", p.ID)
	require.Nil(t, p.FullName)
	require.Equal(t, "https://img/a.png", *p.AvatarURL)

	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Update(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		update  domain.ProfileUpdate
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name:   "success",
			update: domain.ProfileUpdate{FullName: strPtr("Alice Doe")},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE profiles SET full_name = COALESCE\(\$1, full_name\), avatar_url = COALESCE\(\$2, avatar_url\)`).
					WithArgs("Alice Doe", nil, "user-1").
					WillReturnRows(sqlmock.NewRows(profileRowColumns).
						AddRow("user-1", "alice@example.com", "Alice Doe", nil, "hash", "salt", created, created))
			},
		},
		{
			name:   "not found",
			update: domain.ProfileUpdate{AvatarURL: strPtr("x")},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`UPDATE profiles`).
					WithArgs(nil, "x", "user-1").
					WillReturnRows(sqlmock.NewRows(profileRowColumns))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewProfileRepository(db)
			got, err := repo.Update(ctx, "user-1", tt.update)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "Alice Doe", *got.FullName)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
