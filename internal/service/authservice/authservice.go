package authservice

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/taxiback/internal/domain"
	"github.com/GlebRadaev/taxiback/internal/pg"
	"github.com/GlebRadaev/taxiback/pkg/auth"
)

//go:generate mockgen -source=authservice.go -destination=mock_authservice.go -package=authservice

const minPasswordLength = 6

type Repo interface {
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindAdminByUsername(ctx context.Context, username string) (*domain.Admin, error)
	CreateAdmin(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
}

type BalanceService interface {
	CreateBalance(ctx context.Context, userID int, role domain.Role) (*domain.Balance, error)
}

type Service struct {
	userRepo       Repo
	balanceService BalanceService
	hashService    auth.HashServiceInterface
	jwtService     auth.JWTServiceInterface
	txManager      pg.TXManager
	tokenTTL       time.Duration
}

func New(
	repo Repo,
	balanceService BalanceService,
	hashService auth.HashServiceInterface,
	jwtService auth.JWTServiceInterface,
	txManager pg.TXManager,
	tokenTTL time.Duration,
) *Service {
	return &Service{
		userRepo:       repo,
		balanceService: balanceService,
		hashService:    hashService,
		jwtService:     jwtService,
		txManager:      txManager,
		tokenTTL:       tokenTTL,
	}
}

// Register creates the account and its zero balance row in one unit, so no
// user exists without a balance to settle against.
func (s *Service) Register(ctx context.Context, phone, password string, role domain.Role, fullName string) (*domain.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || len(password) < minPasswordLength || !role.Valid() {
		return nil, domain.ErrInvalidRequest
	}

	existingUser, err := s.userRepo.FindByPhone(ctx, phone)
	if err != nil {
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	if existingUser != nil {
		zap.L().Info("user already exists", zap.String("phone", phone))
		return nil, domain.ErrUserExists
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password", zap.Error(err))
		return nil, err
	}

	var user *domain.User
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		created, err := s.userRepo.Create(ctx, &domain.User{
			Phone:        phone,
			PasswordHash: hashedPassword,
			Role:         role,
			FullName:     strings.TrimSpace(fullName),
		})
		if err != nil {
			return err
		}
		if _, err := s.balanceService.CreateBalance(ctx, created.ID, role); err != nil {
			return err
		}
		user = created
		return nil
	})
	if err != nil {
		zap.L().Error("can't register user", zap.String("phone", phone), zap.Error(err))
		return nil, err
	}

	zap.L().Info("user successfully registered", zap.Int("id", user.ID), zap.String("role", string(role)))
	return user, nil
}

func (s *Service) Authenticate(ctx context.Context, phone, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hashService.ComparePassword(user.PasswordHash, password) {
		zap.L().Info("invalid credentials", zap.String("phone", phone))
		return nil, domain.ErrInvalidCredentials
	}
	zap.L().Info("user successfully authenticated", zap.Int("id", user.ID))
	return user, nil
}

func (s *Service) AuthenticateAdmin(ctx context.Context, username, password string) (*domain.Admin, error) {
	admin, err := s.userRepo.FindAdminByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if admin == nil || !s.hashService.ComparePassword(admin.PasswordHash, password) {
		zap.L().Warn("invalid admin credentials", zap.String("username", username))
		return nil, domain.ErrInvalidCredentials
	}
	zap.L().Info("admin successfully authenticated", zap.Int("id", admin.ID))
	return admin, nil
}

// EnsureAdmin creates the bootstrap admin when it is configured and missing.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	admin, err := s.userRepo.FindAdminByUsername(ctx, username)
	if err != nil {
		return err
	}
	if admin != nil {
		return nil
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.CreateAdmin(ctx, &domain.Admin{
		Username:     username,
		PasswordHash: hashedPassword,
		FullName:     "Administrator",
	}); err != nil {
		return err
	}
	zap.L().Info("bootstrap admin created", zap.String("username", username))
	return nil
}

func (s *Service) GenerateToken(userID int, role domain.Role) (string, error) {
	token, err := s.jwtService.GenerateJWT(userID, string(role), time.Now().Add(s.tokenTTL))
	if err != nil {
		zap.L().Error("can't generate token", zap.Error(err))
		return "", err
	}
	return token, nil
}
