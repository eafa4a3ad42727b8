// Package accounts persists the actors: admin users, clients resolved by
// mobile number, refresh tokens and OTP login sessions.
package accounts

import (
	"context"
	"errors"
	"time"

	"github.com/muthuvelan/orderdeskbackend/models"
	"github.com/muthuvelan/orderdeskbackend/store"
)

const (
	UsersTable         = "users"
	ClientsTable       = "clients"
	RefreshTokensTable = "refresh_tokens"
	OTPSessionsTable   = "otp_sessions"
)

var ErrNotFound = errors.New("account record not found")

type Repo struct {
	store store.Store
}

func NewRepo(s store.Store) *Repo {
	return &Repo{store: s}
}

func (r *Repo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.findOne(ctx, UsersTable, store.Row{"email": email}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) FindUserById(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.findOne(ctx, UsersTable, store.Row{"id": id}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) InsertUser(ctx context.Context, u *models.User) error {
	return r.insert(ctx, UsersTable, u)
}

func (r *Repo) FindClientByMobile(ctx context.Context, mobile string) (*models.Client, error) {
	var c models.Client
	if err := r.findOne(ctx, ClientsTable, store.Row{"mobile": mobile}, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) InsertClient(ctx context.Context, c *models.Client) error {
	return r.insert(ctx, ClientsTable, c)
}

func (r *Repo) InsertRefreshToken(ctx context.Context, rt *models.RefreshToken) error {
	return r.insert(ctx, RefreshTokensTable, rt)
}

// FindActiveRefreshToken looks up an unrevoked, unexpired token.
func (r *Repo) FindActiveRefreshToken(ctx context.Context, hash string, now time.Time) (*models.RefreshToken, error) {
	rows, err := r.store.ReadTable(ctx, RefreshTokensTable)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		var rt models.RefreshToken
		if err := store.DecodeRow(row, &rt); err != nil {
			continue
		}
		if rt.TokenHash == hash && rt.RevokedAt == nil && rt.ExpiresAt.After(now) {
			return &rt, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Repo) RevokeRefreshToken(ctx context.Context, id string, now time.Time, replacedBy string) error {
	_, err := r.store.UpdateRows(ctx, RefreshTokensTable, store.Row{"id": id}, store.Row{
		"revokedAt":  now.UTC().Format(time.RFC3339Nano),
		"replacedBy": replacedBy,
	})
	return err
}

func (r *Repo) InsertOTPSession(ctx context.Context, s *models.OTPSession) error {
	return r.insert(ctx, OTPSessionsTable, s)
}

func (r *Repo) ConsumeOTPSession(ctx context.Context, mobile, code string, now time.Time) error {
	rows, err := r.store.ReadTable(ctx, OTPSessionsTable)
	if err != nil {
		return err
	}
	for _, row := range rows {
		var s models.OTPSession
		if err := store.DecodeRow(row, &s); err != nil {
			continue
		}
		if s.Mobile == mobile && s.Code == code && s.ExpiresAt.After(now) {
			_, err := r.store.DeleteRows(ctx, OTPSessionsTable, store.Row{"id": s.Id})
			return err
		}
	}
	return ErrNotFound
}

func (r *Repo) findOne(ctx context.Context, table string, where store.Row, out any) error {
	rows, err := r.store.ReadTable(ctx, table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if store.Matches(row, where) {
			return store.DecodeRow(row, out)
		}
	}
	return ErrNotFound
}

func (r *Repo) insert(ctx context.Context, table string, v any) error {
	row, err := store.EncodeRow(v)
	if err != nil {
		return err
	}
	return r.store.InsertRow(ctx, table, row)
}
