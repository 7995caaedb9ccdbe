package identity

import (
	"context"

	"group_service/internal/apperrors"
	"group_service/internal/repositories/sqlstore"
)

// Profile is the read-only user record owned by the user service.
type Profile struct {
	ID                 int64  `json:"id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	CurrencyPreference string `json:"currency_preference"`
	ProfilePic         string `json:"profile_pic"`
}

// Resolver maps emails and ids into the user service's records. The group
// handlers depend only on these two calls, so the direct cross-schema reads
// below can be swapped for a remote client without touching handler logic.
type Resolver interface {
	ResolveUserID(ctx context.Context, email string) (int64, error)
	ResolveUserProfile(ctx context.Context, userID int64) (Profile, error)
}

const (
	userSchema = "user_service_db"
	usersTable = "users"
)

// SQLResolver reads the user schema directly.
// TODO: replace with a call to the user microservice once it exists.
type SQLResolver struct {
	store sqlstore.Querier
}

var _ Resolver = (*SQLResolver)(nil)

func NewSQLResolver(store sqlstore.Querier) *SQLResolver {
	return &SQLResolver{store: store}
}

func (r *SQLResolver) ResolveUserID(ctx context.Context, email string) (int64, error) {
	rows, err := r.store.Select(ctx, userSchema, usersTable, map[string]any{"email": email})
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, apperrors.New(apperrors.NotFound, "user_not_found")
	}
	return rows[0].Int64("id"), nil
}

func (r *SQLResolver) ResolveUserProfile(ctx context.Context, userID int64) (Profile, error) {
	rows, err := r.store.Select(ctx, userSchema, usersTable, map[string]any{"id": userID})
	if err != nil {
		return Profile{}, err
	}
	if len(rows) == 0 {
		return Profile{}, apperrors.New(apperrors.NotFound, "user_not_found")
	}

	row := rows[0]
	return Profile{
		ID:                 row.Int64("id"),
		Email:              row.String("email"),
		Name:               row.String("name"),
		CurrencyPreference: row.String("currency_preference"),
		ProfilePic:         row.String("profile_pic"),
	}, nil
}
