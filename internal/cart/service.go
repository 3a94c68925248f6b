package cart

import (
	"context"
	"errors"
	"strings"

	"marketmate-be/internal/logger"
	"marketmate-be/internal/product"

	"go.uber.org/zap"
)

// ProductReader is the slice of the catalog the cart depends on.
type ProductReader interface {
	FindByID(ctx context.Context, id string) (*product.Product, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*product.Product, error)
}

type Service interface {
	Get(ctx context.Context, userID string) (*View, error)
	Add(ctx context.Context, userID, productID string, qty int) (*View, error)
	Update(ctx context.Context, userID, productID string, qty int) (*View, error)
	Remove(ctx context.Context, userID, productID string) (*View, error)
	Clear(ctx context.Context, userID string) (*View, error)
}

type service struct {
	repo     Repository
	products ProductReader
}

func NewService(repo Repository, products ProductReader) Service {
	return &service{repo: repo, products: products}
}

// view joins the cart lines with the current catalog records.
func (s *service) view(ctx context.Context, c *Cart) (*View, error) {
	if c.IsEmpty() {
		return toView(c, nil), nil
	}

	ids := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return toView(c, products), nil
}

func (s *service) Get(ctx context.Context, userID string) (*View, error) {
	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

func (s *service) Add(ctx context.Context, userID, productID string, qty int) (*View, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddToCart"),
		zap.String("user_id", userID),
		zap.String("product_id", productID),
	)

	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrMissingProductID
	}
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsAvailable {
		return nil, ErrProductUnavailable
	}

	c, err := s.repo.Mutate(ctx, userID, true, func(c *Cart) error {
		return c.Add(p.ID, qty, p.FinalPrice, p.Stock)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			log.Info("add rejected, insufficient stock", zap.Int("stock", p.Stock), zap.Int("quantity", qty))
		}
		return nil, err
	}

	log.Info("item added to cart", zap.Int("lines", len(c.Items)))
	return s.view(ctx, c)
}

func (s *service) Update(ctx context.Context, userID, productID string, qty int) (*View, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrMissingProductID
	}
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	c, err := s.repo.Mutate(ctx, userID, false, func(c *Cart) error {
		if !c.Has(productID) {
			return ErrItemNotFound
		}
		p, err := s.products.FindByID(ctx, productID)
		if err != nil {
			return err
		}
		return c.SetQuantity(productID, qty, p.FinalPrice, p.Stock)
	})
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("cart quantity updated",
		zap.String("layer", "service"),
		zap.String("product_id", productID),
		zap.Int("quantity", qty),
	)
	return s.view(ctx, c)
}

func (s *service) Remove(ctx context.Context, userID, productID string) (*View, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrMissingProductID
	}

	c, err := s.repo.Mutate(ctx, userID, false, func(c *Cart) error {
		c.Remove(productID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}

func (s *service) Clear(ctx context.Context, userID string) (*View, error) {
	c, err := s.repo.Mutate(ctx, userID, false, func(c *Cart) error {
		c.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, c)
}
