package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"handcrafted-haven/internal/domain"
	productsvc "handcrafted-haven/internal/service/product"
	sellersvc "handcrafted-haven/internal/service/seller"
)

type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"imageUrl"`
	IsActive    *bool           `json:"isActive"`
}

func (r productRequest) input() productsvc.Input {
	return productsvc.Input{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
	}
}

type activeRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

type profileRequest struct {
	ShopName  string `json:"shopName"`
	Bio       string `json:"bio"`
	Location  string `json:"location"`
	AvatarURL string `json:"avatarUrl"`
}

type storefrontResponse struct {
	Profile  *domain.SellerProfile `json:"profile"`
	Products []productResponse     `json:"products"`
}

func (h *handler) getSeller(c *gin.Context) {
	p, err := h.deps.SellerSvc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) sellerStorefront(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	profile, err := h.deps.SellerSvc.GetProfile(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	products, err := h.deps.SellerSvc.ListSellerProducts(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, storefrontResponse{Profile: profile, Products: toProducts(products)})
}

func (h *handler) upsertProfile(c *gin.Context) {
	var req profileRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.deps.SellerSvc.UpsertProfile(c.Request.Context(), currentUser(c).ID, sellersvc.ProfileInput{
		ShopName:  req.ShopName,
		Bio:       req.Bio,
		Location:  req.Location,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) listOwnProducts(c *gin.Context) {
	products, err := h.deps.ProductSvc.ListBySeller(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": toProducts(products)})
}

func (h *handler) createProduct(c *gin.Context) {
	var req productRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.deps.ProductSvc.Create(c.Request.Context(), currentUser(c).ID, req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProduct(*p))
}

func (h *handler) updateProduct(c *gin.Context) {
	var req productRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.deps.ProductSvc.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProduct(*p))
}

func (h *handler) setProductActive(c *gin.Context) {
	var req activeRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.deps.ProductSvc.SetActive(c.Request.Context(), currentUser(c).ID, c.Param("id"), *req.IsActive)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProduct(*p))
}

func (h *handler) listSellerOrders(c *gin.Context) {
	views, err := h.deps.OrderSvc.ListForSeller(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": toSellerOrders(views)})
}

func (h *handler) updateOrderStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	to, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	v, err := h.deps.OrderSvc.UpdateStatus(c.Request.Context(), currentUser(c).ID, c.Param("id"), to)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toSellerOrder(*v))
}

func (h *handler) dashboard(c *gin.Context) {
	d, err := h.deps.OrderSvc.Dashboard(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toDashboard(d))
}
