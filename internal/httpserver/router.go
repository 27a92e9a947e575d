package httpserver

import (
	"io"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"handcrafted-haven/internal/domain"
)

type handler struct {
	logger *log.Logger
	deps   Deps
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	useJSONFieldNames()
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	h := &handler{logger: logger, deps: deps}

	router.GET("/healthz", healthHandler)
	checks := map[string]Pinger{}
	if db != nil {
		checks["db"] = db
	}
	if deps.Cache != nil {
		checks["cache"] = deps.Cache
	}
	router.GET("/readyz", readyHandler(checks))

	router.POST("/auth/register", h.register)
	router.POST("/auth/login", h.login)

	router.GET("/products", h.searchProducts)
	router.GET("/products/:id", h.getProduct)
	router.GET("/products/:id/reviews", h.listReviews)
	router.GET("/categories", h.categories)
	router.GET("/sellers/:id", h.getSeller)
	router.GET("/sellers/:id/products", h.sellerStorefront)

	authed := router.Group("/", h.authenticate)
	authed.GET("/me", h.me)

	buyer := authed.Group("/", requireRole(domain.RoleBuyer))
	buyer.GET("/cart", h.getCart)
	buyer.DELETE("/cart", h.clearCart)
	buyer.POST("/cart/items", h.addCartItem)
	buyer.PATCH("/cart/items/:productId", h.setCartItem)
	buyer.DELETE("/cart/items/:productId", h.removeCartItem)
	buyer.POST("/cart/checkout", h.checkout)
	buyer.GET("/orders", h.listOrders)
	buyer.GET("/orders/:id", h.getOrder)
	buyer.POST("/orders/:id/cancel", h.cancelOrder)
	buyer.POST("/products/:id/reviews", h.createReview)

	seller := authed.Group("/seller", requireRole(domain.RoleSeller))
	seller.GET("/products", h.listOwnProducts)
	seller.POST("/products", h.createProduct)
	seller.PUT("/products/:id", h.updateProduct)
	seller.PATCH("/products/:id/active", h.setProductActive)
	seller.GET("/orders", h.listSellerOrders)
	seller.POST("/orders/:id/status", h.updateOrderStatus)
	seller.GET("/dashboard", h.dashboard)
	seller.PUT("/profile", h.upsertProfile)

	return router, nil
}
