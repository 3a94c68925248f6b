package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"marketmate-be/internal/logger"
	"marketmate-be/internal/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, userID string, params CreateParams) (*Order, error)
	List(ctx context.Context, userID string) ([]Order, error)
	Get(ctx context.Context, userID, id string) (*Order, error)
}

type service struct {
	repo     Repository
	counters *metrics.Registry
	now      func() time.Time
}

func NewService(repo Repository, counters *metrics.Registry) Service {
	if counters == nil {
		counters = metrics.NewRegistry()
	}
	return &service{repo: repo, counters: counters, now: time.Now}
}

func (s *service) Create(ctx context.Context, userID string, params CreateParams) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("user_id", userID),
	)

	address := strings.TrimSpace(params.ShippingAddress)
	if address == "" {
		return nil, ErrMissingShippingAddress
	}
	payment := strings.TrimSpace(params.PaymentMethod)
	if payment == "" {
		payment = PaymentCashOnDelivery
	}

	o := &Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           []Item{},
		TotalAmount:     decimal.Zero,
		ShippingAddress: address,
		PaymentMethod:   payment,
		Status:          StatusPending,
		CreatedAt:       s.now().UTC(),
	}

	timer := metrics.StartTimer()
	if err := s.repo.CreateFromCart(ctx, o); err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			s.counters.StockConflicts.Inc()
		}
		return nil, err
	}
	s.counters.OrdersPlaced.Inc()

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Int("lines", len(o.Items)),
		zap.String("total", o.TotalAmount.StringFixed(2)),
		zap.Duration("duration", timer.Duration()),
	)
	return o, nil
}

func (s *service) List(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Get(ctx context.Context, userID, id string) (*Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrForbidden
	}
	return o, nil
}
