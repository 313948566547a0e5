package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"share-ledger-api/internal/application/ports"
	"share-ledger-api/internal/domain/audit"
	domain "share-ledger-api/internal/domain/user"
)

type UserService struct {
	userRepository domain.Repository
	auditLog       audit.Repository
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger
}

func NewUserService(
	userRepository domain.Repository,
	auditLog audit.Repository,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		auditLog:       auditLog,
		mCounter:       mCounter,
		logger:         logger,
	}
}

func (us *UserService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	hashed := string(hash)
	u, err := us.userRepository.CreateUser(ctx, domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: &hashed,
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	us.audit(ctx, u, audit.ActionRegister, "user "+u.Email+" registered")
	us.mCounter.WithLabelValues("user_registered_total").Inc()

	return u, nil
}

func (us *UserService) FindUserByID(ctx context.Context, uuid domain.UUID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, uuid)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindUsers(ctx context.Context, page int) (domain.Users, error) {
	users, err := us.userRepository.FetchUsers(ctx, page)
	if err != nil {
		return nil, err
	}

	return users, nil
}

// RecordActivity writes an activity log row for actions that happen outside
// a service call, like login and logout. Failures are logged, never surfaced.
func (us *UserService) RecordActivity(ctx context.Context, uuid domain.UUID, action, details string) {
	id, err := us.userRepository.FetchInternalID(ctx, uuid)
	if err != nil {
		us.logger.Warn("audit: resolve user id failed", zap.Error(err))
		return
	}
	if err = us.auditLog.Insert(ctx, id, action, details); err != nil {
		us.logger.Warn("audit insert failed", zap.String("action", action), zap.Error(err))
	}
}

func (us *UserService) audit(ctx context.Context, u *domain.User, action, details string) {
	us.RecordActivity(ctx, u.UUID, action, details)
}
