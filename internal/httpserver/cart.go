package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"handcrafted-haven/internal/domain"
	ordersvc "handcrafted-haven/internal/service/order"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type checkoutRequest struct {
	CustomerName    string                 `json:"customerName"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
}

func (h *handler) getCart(c *gin.Context) {
	q, err := h.deps.CartSvc.Quote(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCart(q))
}

func (h *handler) clearCart(c *gin.Context) {
	if err := h.deps.CartSvc.Clear(c.Request.Context(), currentUser(c).ID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) addCartItem(c *gin.Context) {
	var req addItemRequest
	if !bindJSON(c, &req) {
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	q, err := h.deps.CartSvc.AddItem(c.Request.Context(), currentUser(c).ID, req.ProductID, qty)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCart(q))
}

func (h *handler) setCartItem(c *gin.Context) {
	var req quantityRequest
	if !bindJSON(c, &req) {
		return
	}
	q, err := h.deps.CartSvc.SetQuantity(c.Request.Context(), currentUser(c).ID, c.Param("productId"), *req.Quantity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCart(q))
}

func (h *handler) removeCartItem(c *gin.Context) {
	q, err := h.deps.CartSvc.RemoveItem(c.Request.Context(), currentUser(c).ID, c.Param("productId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toCart(q))
}

func (h *handler) checkout(c *gin.Context) {
	var req checkoutRequest
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.deps.OrderSvc.Checkout(c.Request.Context(), currentUser(c).ID, ordersvc.CheckoutInput{
		CustomerName:    req.CustomerName,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrder(*o))
}
