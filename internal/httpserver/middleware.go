package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"handcrafted-haven/internal/domain"
)

const userKey = "user"

// authenticate resolves the bearer token to a user or aborts with 401.
func (h *handler) authenticate(c *gin.Context) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}
	user, err := h.deps.AuthSvc.LookupByToken(c.Request.Context(), token)
	if err != nil {
		h.fail(c, err)
		return
	}
	if user == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	c.Set(userKey, user)
	c.Next()
}

func requireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c).Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "requires " + string(role) + " account"})
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// currentUser is only valid behind authenticate.
func currentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return &domain.User{}
}
