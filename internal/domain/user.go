package domain

import (
	"context"
	"time"
)

// Profile is a registered user. Email is unique and immutable after signup.
// swagger:model Profile
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     *string   `json:"full_name"`
	AvatarURL    *string   `json:"avatar_url"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewProfile returns a new Profile with the given fields. ID is typically set by the repository on create.
func NewProfile(email string, fullName *string, passwordHash, salt string, createdAt time.Time) *Profile {
	return &Profile{
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		Salt:         salt,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

// Identity is the authenticated caller resolved from a request.
type Identity struct {
	UserID string
	Email  string
}

// PublicProfile is what other users see of a profile: no email, only public upcoming events.
type PublicProfile struct {
	ID        string    `json:"id"`
	FullName  *string   `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	Events    []*Event  `json:"events"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileUpdate holds the mutable profile fields. Nil means unchanged.
type ProfileUpdate struct {
	FullName  *string
	AvatarURL *string
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues bearer tokens for an authenticated identity.
type TokenIssuer interface {
	Issue(identity Identity, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// ProfileRepository defines the interface for profile storage
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Update(ctx context.Context, id string, update ProfileUpdate) (*Profile, error)
}

// UserService defines signup, login and profile operations.
type UserService interface {
	SignUp(ctx context.Context, email, password string, fullName *string) (*Profile, error)
	Login(ctx context.Context, email, password string) (token string, profile *Profile, err error)
	GetByID(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, id string, update ProfileUpdate) (*Profile, error)
	GetPublicProfile(ctx context.Context, id string) (*PublicProfile, error)
}
