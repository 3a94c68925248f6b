package handler

import (
	"errors"
	"net/http"

	"marketmate-be/internal/cart"
	"marketmate-be/internal/middleware"
	"marketmate-be/internal/order"
	"marketmate-be/internal/product"
	"marketmate-be/internal/user"

	"github.com/gin-gonic/gin"
)

const msgInvalidBody = "Invalid request body"

type errorMapping struct {
	err     error
	status  int
	message string
}

// errorTable translates domain sentinels into client responses.
// Anything not listed is answered with a generic 500.
var errorTable = []errorMapping{
	// accounts
	{user.ErrMissingFields, http.StatusBadRequest, "Please provide all required fields"},
	{user.ErrMissingCredentials, http.StatusBadRequest, "Please provide email and password"},
	{user.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
	{user.ErrRoleNotAllowed, http.StatusBadRequest, "Admin accounts cannot be registered"},
	{user.ErrNotShopkeeper, http.StatusBadRequest, "User is not a shopkeeper"},
	{user.ErrShopkeeperAlreadyApproved, http.StatusBadRequest, "Shopkeeper is already approved"},
	{user.ErrAccountExists, http.StatusBadRequest, "User already exists with this email or username"},
	{user.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{user.ErrInvalidAdminCredentials, http.StatusUnauthorized, "Invalid admin credentials"},
	{user.ErrShopkeeperNotApproved, http.StatusForbidden, "Shopkeeper account not approved by admin yet"},
	{user.ErrAdminLoginRequired, http.StatusForbidden, "Admin accounts must sign in through the admin login"},
	{user.ErrShopkeeperNotFound, http.StatusNotFound, "Shopkeeper not found"},
	{user.ErrAccountNotFound, http.StatusNotFound, "User not found"},

	// catalog
	{product.ErrMissingFields, http.StatusBadRequest, "Please provide all required fields"},
	{product.ErrInvalidCategory, http.StatusBadRequest, "Invalid category"},
	{product.ErrInvalidUnit, http.StatusBadRequest, "Invalid unit"},
	{product.ErrInvalidPrice, http.StatusBadRequest, "Price must not be negative"},
	{product.ErrPriceTooLarge, http.StatusBadRequest, "Price is too large"},
	{product.ErrInvalidDiscount, http.StatusBadRequest, "Discount must be between 0 and 100"},
	{product.ErrInvalidStock, http.StatusBadRequest, "Stock must not be negative"},
	{product.ErrUpdateForbidden, http.StatusForbidden, "Not authorized to update this product"},
	{product.ErrDeleteForbidden, http.StatusForbidden, "Not authorized to delete this product"},
	{product.ErrProductNotFound, http.StatusNotFound, "Product not found"},

	// cart
	{cart.ErrInvalidQuantity, http.StatusBadRequest, "Quantity must be at least 1"},
	{cart.ErrMissingProductID, http.StatusBadRequest, "Product id is required"},
	{cart.ErrInsufficientStock, http.StatusBadRequest, "Insufficient stock"},
	{cart.ErrProductUnavailable, http.StatusBadRequest, "Product is not available"},
	{cart.ErrCartNotFound, http.StatusNotFound, "Cart not found"},
	{cart.ErrItemNotFound, http.StatusNotFound, "Product not in cart"},
	{cart.ErrConcurrentUpdate, http.StatusConflict, "Cart was modified by another request, please retry"},

	// orders
	{order.ErrMissingShippingAddress, http.StatusBadRequest, "Shipping address is required"},
	{order.ErrEmptyCart, http.StatusBadRequest, "Cart is empty"},
	{order.ErrCartChanged, http.StatusConflict, "Cart changed during checkout, please retry"},
	{order.ErrForbidden, http.StatusForbidden, "Not authorized to view this order"},
	{order.ErrOrderNotFound, http.StatusNotFound, "Order not found"},
}

// respondError writes the mapped status and message for err.
func respondError(c *gin.Context, err error) {
	var stockErr *order.StockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Insufficient stock for " + stockErr.Label()})
		return
	}

	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			c.JSON(m.status, gin.H{"message": m.message})
			return
		}
	}

	middleware.AbortInternal(c, err)
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}
