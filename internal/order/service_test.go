package order

import (
	"context"
	"errors"
	"testing"

	"marketmate-be/internal/metrics"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateFromCart(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Defaults and counts", func(t *testing.T) {
		repo := new(MockRepository)
		counters := metrics.NewRegistry()
		repo.On("CreateFromCart", ctx, mock.MatchedBy(func(o *Order) bool {
			return o.UserID == "u-1" &&
				o.ShippingAddress == "12 Market Rd" &&
				o.PaymentMethod == PaymentCashOnDelivery &&
				o.Status == StatusPending &&
				o.ID != ""
		})).Run(func(args mock.Arguments) {
			o := args.Get(1).(*Order)
			o.addItem(newItem("p-1", "Milk", "FreshMart", 3,
				decimal.NewFromInt(100), decimal.NewFromInt(20), decimal.NewFromInt(80)))
		}).Return(nil)

		o, err := NewService(repo, counters).Create(ctx, "u-1", CreateParams{ShippingAddress: " 12 Market Rd "})
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(240).Equal(o.TotalAmount))
		assert.Equal(t, uint64(1), counters.OrdersPlaced.Load())
		repo.AssertExpectations(t)
	})

	t.Run("Explicit payment method", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CreateFromCart", ctx, mock.MatchedBy(func(o *Order) bool {
			return o.PaymentMethod == "upi"
		})).Return(nil)

		o, err := NewService(repo, nil).Create(ctx, "u-1", CreateParams{ShippingAddress: "addr", PaymentMethod: "upi"})
		require.NoError(t, err)
		assert.Equal(t, "upi", o.PaymentMethod)
	})

	t.Run("Shipping address required", func(t *testing.T) {
		repo := new(MockRepository)

		_, err := NewService(repo, nil).Create(ctx, "u-1", CreateParams{ShippingAddress: "  "})
		assert.ErrorIs(t, err, ErrMissingShippingAddress)
		repo.AssertNotCalled(t, "CreateFromCart", mock.Anything, mock.Anything)
	})

	t.Run("Stock conflict is counted", func(t *testing.T) {
		repo := new(MockRepository)
		counters := metrics.NewRegistry()
		repo.On("CreateFromCart", ctx, mock.Anything).Return(&StockError{ProductID: "p-1", ProductName: "Milk"})

		_, err := NewService(repo, counters).Create(ctx, "u-1", CreateParams{ShippingAddress: "addr"})
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, uint64(1), counters.StockConflicts.Load())
		assert.Zero(t, counters.OrdersPlaced.Load())
	})

	t.Run("Empty cart", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("CreateFromCart", ctx, mock.Anything).Return(ErrEmptyCart)

		_, err := NewService(repo, nil).Create(ctx, "u-1", CreateParams{ShippingAddress: "addr"})
		assert.ErrorIs(t, err, ErrEmptyCart)
	})
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		found   *Order
		findErr error
		wantErr error
	}{
		{"Owner", &Order{ID: "o-1", UserID: "u-1"}, nil, nil},
		{"Someone else's order", &Order{ID: "o-1", UserID: "u-2"}, nil, ErrForbidden},
		{"Missing", nil, ErrOrderNotFound, ErrOrderNotFound},
		{"Store failure", nil, errors.New("timeout"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("FindByID", ctx, "o-1").Return(tt.found, tt.findErr)

			o, err := NewService(repo, nil).Get(ctx, "u-1", "o-1")
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.findErr != nil:
				assert.EqualError(t, err, tt.findErr.Error())
			default:
				require.NoError(t, err)
				assert.Equal(t, "o-1", o.ID)
			}
		})
	}
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("ListByUser", ctx, "u-1").Return([]Order{{ID: "o-2"}, {ID: "o-1"}}, nil)

	orders, err := NewService(repo, nil).List(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}
