package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"handcrafted-haven/internal/domain"
	productsvc "handcrafted-haven/internal/service/product"
	reviewsvc "handcrafted-haven/internal/service/review"
)

type reviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type reviewsResponse struct {
	Reviews []domain.Review   `json:"reviews"`
	Summary reviewsvc.Summary `json:"summary"`
}

func (h *handler) searchProducts(c *gin.Context) {
	in := productsvc.SearchInput{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}
	var err error
	if in.MinPrice, err = decimalQuery(c, "minPrice"); err != nil {
		badRequest(c, err.Error())
		return
	}
	if in.MaxPrice, err = decimalQuery(c, "maxPrice"); err != nil {
		badRequest(c, err.Error())
		return
	}
	if in.Page, err = intQuery(c, "page"); err != nil {
		badRequest(c, err.Error())
		return
	}
	if in.PageSize, err = intQuery(c, "pageSize"); err != nil {
		badRequest(c, err.Error())
		return
	}

	res, err := h.deps.ProductSvc.Search(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toSearch(res))
}

func (h *handler) getProduct(c *gin.Context) {
	p, err := h.deps.ProductSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toProduct(*p))
}

func (h *handler) categories(c *gin.Context) {
	cats, err := h.deps.ProductSvc.Categories(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (h *handler) listReviews(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	reviews, err := h.deps.ReviewSvc.ListForProduct(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	summary, err := h.deps.ReviewSvc.Summary(ctx, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	c.JSON(http.StatusOK, reviewsResponse{Reviews: reviews, Summary: summary})
}

func (h *handler) createReview(c *gin.Context) {
	var req reviewRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.deps.ReviewSvc.Create(c.Request.Context(), currentUser(c).ID, c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func decimalQuery(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domain.Invalidf("%s must be a number", key)
	}
	return &d, nil
}

// intQuery returns zero when key is absent so the service default applies.
func intQuery(c *gin.Context, key string) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Invalidf("%s must be an integer", key)
	}
	return n, nil
}
