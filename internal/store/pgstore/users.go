package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/store"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

const uniqueViolation = "23505"

// UserStore is the PostgreSQL UserStore.
type UserStore struct {
	DB  *sql.DB
	Now func() time.Time
}

// NewUserStore creates a new UserStore on db.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{DB: db, Now: time.Now}
}

func (s *UserStore) CreateUser(ctx context.Context, u *models.User) error {
	u.ID = uuid.New().String()
	u.Email = store.NormalizeEmail(u.Email)
	u.CreatedAt = s.Now()

	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, name, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)",
		u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return store.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return s.getUser(ctx, "email", store.NormalizeEmail(email))
}

func (s *UserStore) GetUserByID(ctx context.Context, id string) (models.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *UserStore) getUser(ctx context.Context, column, value string) (models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, email, name, password_hash, created_at FROM users WHERE "+column+" = $1", value).
		Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, store.ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user by %s: %w", column, err)
	}
	return u, nil
}
