package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handler) listOrders(c *gin.Context) {
	orders, err := h.deps.OrderSvc.ListForBuyer(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": toOrders(orders)})
}

func (h *handler) getOrder(c *gin.Context) {
	o, err := h.deps.OrderSvc.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrder(*o))
}

func (h *handler) cancelOrder(c *gin.Context) {
	o, err := h.deps.OrderSvc.Cancel(c.Request.Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrder(*o))
}
