package handler

import (
	"context"

	"marketmate-be/internal/cart"
	"marketmate-be/internal/order"
	"marketmate-be/internal/product"
	"marketmate-be/internal/user"

	"github.com/stretchr/testify/mock"
)

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) session(args mock.Arguments) (*user.Account, string, error) {
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*user.Account), args.String(1), args.Error(2)
}

func (m *MockUsers) Register(ctx context.Context, p user.RegisterParams) (*user.Account, string, error) {
	return m.session(m.Called(ctx, p))
}

func (m *MockUsers) Login(ctx context.Context, email, password string) (*user.Account, string, error) {
	return m.session(m.Called(ctx, email, password))
}

func (m *MockUsers) AdminLogin(ctx context.Context, email, password string) (*user.Account, string, error) {
	return m.session(m.Called(ctx, email, password))
}

func (m *MockUsers) account(args mock.Arguments) (*user.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Account), args.Error(1)
}

func (m *MockUsers) Profile(ctx context.Context, id string) (*user.Account, error) {
	return m.account(m.Called(ctx, id))
}

func (m *MockUsers) Resolve(ctx context.Context, id string) (*user.Account, error) {
	return m.account(m.Called(ctx, id))
}

func (m *MockUsers) ListShopkeepers(ctx context.Context, approved bool) ([]user.Account, error) {
	args := m.Called(ctx, approved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.Account), args.Error(1)
}

func (m *MockUsers) ApproveShopkeeper(ctx context.Context, id string) (*user.Account, error) {
	return m.account(m.Called(ctx, id))
}

func (m *MockUsers) RejectShopkeeper(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type MockProducts struct {
	mock.Mock
}

func (m *MockProducts) list(args mock.Arguments) ([]product.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProducts) one(args mock.Arguments) (*product.Product, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProducts) List(ctx context.Context, q product.ListQuery) ([]product.Product, error) {
	return m.list(m.Called(ctx, q))
}

func (m *MockProducts) TodaysOffers(ctx context.Context) ([]product.Product, error) {
	return m.list(m.Called(ctx))
}

func (m *MockProducts) Compare(ctx context.Context, name string) ([]product.Product, error) {
	return m.list(m.Called(ctx, name))
}

func (m *MockProducts) Get(ctx context.Context, id string) (*product.Product, error) {
	return m.one(m.Called(ctx, id))
}

func (m *MockProducts) Create(ctx context.Context, owner product.Owner, p product.CreateParams) (*product.Product, error) {
	return m.one(m.Called(ctx, owner, p))
}

func (m *MockProducts) Mine(ctx context.Context, ownerID string) ([]product.Product, error) {
	return m.list(m.Called(ctx, ownerID))
}

func (m *MockProducts) Update(ctx context.Context, ownerID, id string, p product.UpdateParams) (*product.Product, error) {
	return m.one(m.Called(ctx, ownerID, id, p))
}

func (m *MockProducts) Delete(ctx context.Context, ownerID, id string) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

type MockCarts struct {
	mock.Mock
}

func (m *MockCarts) view(args mock.Arguments) (*cart.View, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.View), args.Error(1)
}

func (m *MockCarts) Get(ctx context.Context, userID string) (*cart.View, error) {
	return m.view(m.Called(ctx, userID))
}

func (m *MockCarts) Add(ctx context.Context, userID, productID string, qty int) (*cart.View, error) {
	return m.view(m.Called(ctx, userID, productID, qty))
}

func (m *MockCarts) Update(ctx context.Context, userID, productID string, qty int) (*cart.View, error) {
	return m.view(m.Called(ctx, userID, productID, qty))
}

func (m *MockCarts) Remove(ctx context.Context, userID, productID string) (*cart.View, error) {
	return m.view(m.Called(ctx, userID, productID))
}

func (m *MockCarts) Clear(ctx context.Context, userID string) (*cart.View, error) {
	return m.view(m.Called(ctx, userID))
}

type MockOrders struct {
	mock.Mock
}

func (m *MockOrders) Create(ctx context.Context, userID string, p order.CreateParams) (*order.Order, error) {
	args := m.Called(ctx, userID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrders) List(ctx context.Context, userID string) ([]order.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrders) Get(ctx context.Context, userID, id string) (*order.Order, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

// tokenTable treats the raw token as the account id unless it is "bad".
type tokenTable struct{}

func (tokenTable) Parse(token string) (string, error) {
	if token == "bad" {
		return "", errBadToken
	}
	return token, nil
}
