package httpserver

import (
	"context"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pinger is a dependency checked by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server owns the HTTP listener of the marketplace API.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

func New(addr string, logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*Server, error) {
	router, err := buildRouter(logger, db, deps, corsOrigins)
	if err != nil {
		return nil, err
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
		logger: logger,
	}, nil
}

func (s *Server) ListenAndServe() error {
	s.logger.Printf("http: listening addr=%s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readyHandler pings every named dependency within one second.
func readyHandler(checks map[string]Pinger) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		if _, ok := checks["db"]; !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		results := gin.H{}
		ready := true
		for _, name := range names {
			if err := checks[name].Ping(ctx); err != nil {
				results[name] = "unreachable"
				ready = false
				continue
			}
			results[name] = "ok"
		}
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": results})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": results})
	}
}
