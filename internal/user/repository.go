package user

import (
	"context"
	"database/sql"

	"bookmart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, username, email, password string) (User, error)
	FindByUsername(username string) (User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, username, email, password string) (User, error) {
	log := logger.FromCtx(ctx)

	var u User
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO users (username, email, password) VALUES ($1, $2, $3) RETURNING id, username, email, password",
		username, email, password,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Password)

	if err != nil {
		log.Error("db: failed to insert user",
			zap.String("username", username),
			zap.Error(err),
		)
	}

	return u, err
}

func (r *repository) FindByUsername(username string) (User, error) {
	var u User
	err := r.db.QueryRow(
		"SELECT id, username, email, password FROM users WHERE username = $1",
		username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.Password)

	return u, err
}
