package handler

import (
	"net/http"

	"marketmate-be/internal/middleware"
	"marketmate-be/internal/product"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	products product.Service
}

func NewProductHandler(products product.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

type productRequest struct {
	ProductName   *string          `json:"productName"`
	Category      *string          `json:"category"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Discount      *decimal.Decimal `json:"discount"`
	Stock         *int             `json:"stock"`
	Unit          *string          `json:"unit"`
	IsAvailable   *bool            `json:"isAvailable"`
	ImageURL      *string          `json:"imageUrl"`
	ImagePublicID *string          `json:"imagePublicId"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r productRequest) createParams() product.CreateParams {
	return product.CreateParams{
		ProductName:   deref(r.ProductName),
		Category:      deref(r.Category),
		Description:   deref(r.Description),
		Price:         r.Price,
		Discount:      r.Discount,
		Stock:         r.Stock,
		Unit:          deref(r.Unit),
		ImageURL:      deref(r.ImageURL),
		ImagePublicID: deref(r.ImagePublicID),
	}
}

func (r productRequest) updateParams() product.UpdateParams {
	return product.UpdateParams{
		ProductName:   r.ProductName,
		Category:      r.Category,
		Description:   r.Description,
		Price:         r.Price,
		Discount:      r.Discount,
		Stock:         r.Stock,
		Unit:          r.Unit,
		IsAvailable:   r.IsAvailable,
		ImageURL:      r.ImageURL,
		ImagePublicID: r.ImagePublicID,
	}
}

func nonNil(list []product.Product) []product.Product {
	if list == nil {
		return []product.Product{}
	}
	return list
}

func (h *ProductHandler) List(c *gin.Context) {
	list, err := h.products.List(c.Request.Context(), product.ListQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     product.SortKey(c.Query("sortBy")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

func (h *ProductHandler) TodaysOffers(c *gin.Context) {
	list, err := h.products.TodaysOffers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

func (h *ProductHandler) Compare(c *gin.Context) {
	list, err := h.products.Compare(c.Request.Context(), c.Param("productName"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Mine(c *gin.Context) {
	a, _ := middleware.AccountFrom(c)

	list, err := h.products.Mine(c.Request.Context(), a.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(list))
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}

	a, _ := middleware.AccountFrom(c)
	p, err := h.products.Create(c.Request.Context(),
		product.Owner{ID: a.ID, ShopName: a.ShopName},
		req.createParams(),
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, msgInvalidBody)
		return
	}

	a, _ := middleware.AccountFrom(c)
	p, err := h.products.Update(c.Request.Context(), a.ID, c.Param("id"), req.updateParams())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	a, _ := middleware.AccountFrom(c)
	if err := h.products.Delete(c.Request.Context(), a.ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
