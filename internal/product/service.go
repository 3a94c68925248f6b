package product

import (
	"context"
	"strings"
	"time"

	"marketmate-be/internal/logger"
	"marketmate-be/internal/media"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, q ListQuery) ([]Product, error)
	TodaysOffers(ctx context.Context) ([]Product, error)
	Compare(ctx context.Context, name string) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, owner Owner, params CreateParams) (*Product, error)
	Mine(ctx context.Context, ownerID string) ([]Product, error)
	Update(ctx context.Context, ownerID, id string, params UpdateParams) (*Product, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type service struct {
	repo   Repository
	images media.Remover
	now    func() time.Time
}

func NewService(repo Repository, images media.Remover) Service {
	if images == nil {
		images = media.NewNoopRemover()
	}
	return &service{repo: repo, images: images, now: time.Now}
}

func (s *service) List(ctx context.Context, q ListQuery) ([]Product, error) {
	f := Filter{
		NameContains:  strings.TrimSpace(q.Search),
		OnlyAvailable: true,
		Sort:          q.Sort,
	}
	if c := strings.TrimSpace(q.Category); c != "" && c != CategoryAll {
		f.Category = Category(c)
	}

	switch q.Sort {
	case SortNewest, SortPriceLow, SortPriceHigh, SortDiscount:
	default:
		f.Sort = SortNewest
	}

	return s.repo.List(ctx, f)
}

func (s *service) TodaysOffers(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx, Filter{
		OnlyAvailable:  true,
		OnlyDiscounted: true,
		Sort:           SortDiscount,
	})
}

func (s *service) Compare(ctx context.Context, name string) ([]Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingFields
	}
	return s.repo.List(ctx, Filter{
		NameContains:  name,
		OnlyAvailable: true,
		Sort:          SortPriceLow,
	})
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Mine(ctx context.Context, ownerID string) ([]Product, error) {
	return s.repo.List(ctx, Filter{ShopkeeperID: ownerID, Sort: SortNewest})
}

// normalizePrice rounds to cents and rejects what NUMERIC(12,2) cannot hold.
func normalizePrice(price decimal.Decimal) (decimal.Decimal, error) {
	price = price.Round(2)
	if price.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	if price.GreaterThan(MaxPrice) {
		return decimal.Zero, ErrPriceTooLarge
	}
	return price, nil
}

func normalizeDiscount(discount decimal.Decimal) (decimal.Decimal, error) {
	discount = discount.Round(2)
	if discount.IsNegative() || discount.GreaterThan(hundred) {
		return decimal.Zero, ErrInvalidDiscount
	}
	return discount, nil
}

func (s *service) Create(ctx context.Context, owner Owner, params CreateParams) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.String("shopkeeper_id", owner.ID),
	)

	name := strings.TrimSpace(params.ProductName)
	category := Category(strings.TrimSpace(params.Category))
	if name == "" || category == "" || params.Price == nil || params.Stock == nil {
		return nil, ErrMissingFields
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	unit := Unit(strings.TrimSpace(params.Unit))
	if unit == "" {
		unit = UnitPiece
	}
	if !unit.Valid() {
		return nil, ErrInvalidUnit
	}

	price, err := normalizePrice(*params.Price)
	if err != nil {
		return nil, err
	}
	discount := decimal.Zero
	if params.Discount != nil {
		if discount, err = normalizeDiscount(*params.Discount); err != nil {
			return nil, err
		}
	}
	if *params.Stock < 0 {
		return nil, ErrInvalidStock
	}

	imageURL := strings.TrimSpace(params.ImageURL)
	if imageURL == "" {
		imageURL = PlaceholderImageURL
	}

	now := s.now().UTC()
	p := &Product{
		ID:            uuid.NewString(),
		ShopkeeperID:  owner.ID,
		ShopName:      owner.ShopName,
		ProductName:   name,
		Category:      category,
		Description:   strings.TrimSpace(params.Description),
		Price:         price,
		Discount:      discount,
		Stock:         *params.Stock,
		Unit:          unit,
		ImageURL:      imageURL,
		ImagePublicID: params.ImagePublicID,
		IsAvailable:   true,
		CreatedAt:     now,
		LastUpdated:   now,
	}
	p.Reprice()

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info("product created",
		zap.String("product_id", p.ID),
		zap.String("final_price", p.FinalPrice.StringFixed(2)),
	)
	return p, nil
}

// applyUpdate copies the provided fields onto p and validates the result.
func applyUpdate(p *Product, params UpdateParams) error {
	if params.ProductName != nil {
		name := strings.TrimSpace(*params.ProductName)
		if name == "" {
			return ErrMissingFields
		}
		p.ProductName = name
	}
	if params.Category != nil {
		c := Category(strings.TrimSpace(*params.Category))
		if !c.Valid() {
			return ErrInvalidCategory
		}
		p.Category = c
	}
	if params.Description != nil {
		p.Description = strings.TrimSpace(*params.Description)
	}
	if params.Price != nil {
		price, err := normalizePrice(*params.Price)
		if err != nil {
			return err
		}
		p.Price = price
	}
	if params.Discount != nil {
		discount, err := normalizeDiscount(*params.Discount)
		if err != nil {
			return err
		}
		p.Discount = discount
	}
	if params.Stock != nil {
		if *params.Stock < 0 {
			return ErrInvalidStock
		}
		p.Stock = *params.Stock
	}
	if params.Unit != nil {
		u := Unit(strings.TrimSpace(*params.Unit))
		if !u.Valid() {
			return ErrInvalidUnit
		}
		p.Unit = u
	}
	if params.IsAvailable != nil {
		p.IsAvailable = *params.IsAvailable
	}
	if params.ImageURL != nil && strings.TrimSpace(*params.ImageURL) != "" {
		p.ImageURL = strings.TrimSpace(*params.ImageURL)
	}
	if params.ImagePublicID != nil {
		p.ImagePublicID = *params.ImagePublicID
	}
	return nil
}

func (s *service) Update(ctx context.Context, ownerID, id string, params UpdateParams) (*Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.ShopkeeperID != ownerID {
		return nil, ErrUpdateForbidden
	}

	if err := applyUpdate(p, params); err != nil {
		return nil, err
	}
	p.Reprice()
	p.LastUpdated = s.now().UTC()

	// Stock is only written when the patch names it; checkouts decrement it concurrently.
	if err := s.repo.Update(ctx, p, params.Stock != nil); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("product updated",
		zap.String("layer", "service"),
		zap.String("product_id", p.ID),
		zap.String("final_price", p.FinalPrice.StringFixed(2)),
		zap.Int("stock", p.Stock),
	)
	return p, nil
}

func (s *service) Delete(ctx context.Context, ownerID, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteProduct"),
		zap.String("product_id", id),
	)

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p.ShopkeeperID != ownerID {
		return ErrDeleteForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if p.ImagePublicID != "" {
		if err := s.images.Remove(ctx, p.ImagePublicID); err != nil {
			log.Warn("failed to remove hosted image", zap.String("public_id", p.ImagePublicID), zap.Error(err))
		}
	}

	log.Info("product deleted")
	return nil
}
