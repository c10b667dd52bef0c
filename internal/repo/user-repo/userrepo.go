package userrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/GlebRadaev/taxiback/internal/domain"
	"github.com/GlebRadaev/taxiback/internal/pg"
)

const uniqueViolation = "23505"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var user domain.User
	err := repo.db.QueryRow(ctx, "SELECT id, phone, password_hash, role, full_name FROM users WHERE phone = $1", phone).
		Scan(&user.ID, &user.Phone, &user.PasswordHash, &user.Role, &user.FullName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, pg.Classify(err)
	}
	return &user, nil
}

func (repo *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (phone, password_hash, role, full_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query, user.Phone, user.PasswordHash, user.Role, user.FullName).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		zap.L().Error("can't save user", zap.Error(err))
		return nil, pg.Classify(err)
	}
	return user, nil
}

func (repo *Repository) FindAdminByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var admin domain.Admin
	err := repo.db.QueryRow(ctx, "SELECT id, username, password_hash, full_name FROM admins WHERE username = $1", username).
		Scan(&admin.ID, &admin.Username, &admin.PasswordHash, &admin.FullName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find admin", zap.Error(err))
		return nil, pg.Classify(err)
	}
	return &admin, nil
}

func (repo *Repository) CreateAdmin(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	query := `
		INSERT INTO admins (username, password_hash, full_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := repo.db.QueryRow(ctx, query, admin.Username, admin.PasswordHash, admin.FullName).Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		zap.L().Error("can't save admin", zap.Error(err))
		return nil, pg.Classify(err)
	}
	return admin, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
