package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"marketmate-be/internal/auth"
	"marketmate-be/internal/logger"
	"marketmate-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenIssuer signs the bearer credential handed out on register and login.
type TokenIssuer interface {
	Issue(accountID string) (string, error)
}

type Service interface {
	Register(ctx context.Context, params RegisterParams) (*Account, string, error)
	Login(ctx context.Context, email, password string) (*Account, string, error)
	AdminLogin(ctx context.Context, email, password string) (*Account, string, error)
	Profile(ctx context.Context, id string) (*Account, error)
	Resolve(ctx context.Context, id string) (*Account, error)
	ListShopkeepers(ctx context.Context, approved bool) ([]Account, error)
	ApproveShopkeeper(ctx context.Context, id string) (*Account, error)
	RejectShopkeeper(ctx context.Context, id string) (string, error)
}

type service struct {
	repo     Repository
	tokens   TokenIssuer
	counters *metrics.Registry
	now      func() time.Time
}

func NewService(repo Repository, tokens TokenIssuer, counters *metrics.Registry) Service {
	if counters == nil {
		counters = metrics.NewRegistry()
	}
	return &service{repo: repo, tokens: tokens, counters: counters, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, p RegisterParams) (*Account, string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	p.Username = strings.TrimSpace(p.Username)
	p.Email = normalizeEmail(p.Email)
	p.ShopName = strings.TrimSpace(p.ShopName)
	p.PhoneNumber = strings.TrimSpace(p.PhoneNumber)
	p.Address = strings.TrimSpace(p.Address)

	if p.Username == "" || p.Email == "" || p.Password == "" {
		return nil, "", ErrMissingFields
	}

	role := RoleCustomer
	if p.Role != "" {
		parsed, err := ParseRole(p.Role)
		if err != nil {
			return nil, "", err
		}
		role = parsed
	}
	if role == RoleAdmin {
		return nil, "", ErrRoleNotAllowed
	}

	if role == RoleShopkeeper && (p.ShopName == "" || p.PhoneNumber == "" || p.Address == "") {
		return nil, "", ErrMissingFields
	}

	exists, err := s.repo.ExistsByEmailOrUsername(ctx, p.Email, p.Username)
	if err != nil {
		log.Error("failed to check existing account", zap.Error(err))
		return nil, "", err
	}
	if exists {
		return nil, "", ErrAccountExists
	}

	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	a := &Account{
		ID:           uuid.NewString(),
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		Role:         role,
		IsApproved:   !role.RequiresApproval(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if role == RoleShopkeeper {
		a.ShopName = p.ShopName
		a.PhoneNumber = p.PhoneNumber
		a.Address = p.Address
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(a.ID)
	if err != nil {
		return nil, "", err
	}

	log.Info("account registered",
		zap.String("account_id", a.ID),
		zap.Stringer("role", a.Role),
		zap.Bool("approved", a.IsApproved),
	)

	return a, token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*Account, string, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	a, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		s.counters.FailedLogins.Inc()
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !auth.CheckPassword(password, a.PasswordHash) {
		s.counters.FailedLogins.Inc()
		log.Warn("invalid password", zap.String("account_id", a.ID))
		return nil, "", ErrInvalidCredentials
	}

	switch a.Role {
	case RoleAdmin:
		return nil, "", ErrAdminLoginRequired
	case RoleShopkeeper:
		if !a.IsApproved {
			return nil, "", ErrShopkeeperNotApproved
		}
	case RoleCustomer:
	default:
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidRole, a.Role)
	}

	token, err := s.tokens.Issue(a.ID)
	if err != nil {
		return nil, "", err
	}

	return a, token, nil
}

func (s *service) AdminLogin(ctx context.Context, email, password string) (*Account, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, "", ErrMissingCredentials
	}

	a, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		s.counters.FailedLogins.Inc()
		return nil, "", ErrInvalidAdminCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !a.Role.CanAdminister() || !auth.CheckPassword(password, a.PasswordHash) {
		s.counters.FailedLogins.Inc()
		return nil, "", ErrInvalidAdminCredentials
	}

	token, err := s.tokens.Issue(a.ID)
	if err != nil {
		return nil, "", err
	}

	logger.FromCtx(ctx).Info("admin signed in",
		zap.String("layer", "service"),
		zap.String("account_id", a.ID),
	)

	return a, token, nil
}

func (s *service) Profile(ctx context.Context, id string) (*Account, error) {
	return s.repo.FindByID(ctx, id)
}

// Resolve loads the account a verified token refers to.
func (s *service) Resolve(ctx context.Context, id string) (*Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListShopkeepers(ctx context.Context, approved bool) ([]Account, error) {
	return s.repo.ListShopkeepers(ctx, approved)
}

func (s *service) loadShopkeeper(ctx context.Context, id string) (*Account, error) {
	a, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, ErrShopkeeperNotFound
	}
	if err != nil {
		return nil, err
	}
	if a.Role != RoleShopkeeper {
		return nil, ErrNotShopkeeper
	}
	return a, nil
}

func (s *service) ApproveShopkeeper(ctx context.Context, id string) (*Account, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ApproveShopkeeper"),
		zap.String("shopkeeper_id", id),
	)

	a, err := s.loadShopkeeper(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.IsApproved {
		return a, nil
	}

	approved, err := s.repo.SetApproved(ctx, id, true)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, ErrShopkeeperNotFound
	}
	if err != nil {
		log.Error("failed to approve shopkeeper", zap.Error(err))
		return nil, err
	}

	log.Info("shopkeeper approved")
	return approved, nil
}

func (s *service) RejectShopkeeper(ctx context.Context, id string) (string, error) {
	a, err := s.loadShopkeeper(ctx, id)
	if err != nil {
		return "", err
	}
	// Only pending registrations can be rejected.
	if a.IsApproved {
		return "", ErrShopkeeperAlreadyApproved
	}

	err = s.repo.Delete(ctx, id)
	if errors.Is(err, ErrAccountNotFound) {
		return "", ErrShopkeeperNotFound
	}
	if err != nil {
		return "", err
	}

	logger.FromCtx(ctx).Info("shopkeeper rejected",
		zap.String("layer", "service"),
		zap.String("shopkeeper_id", id),
	)
	return id, nil
}
