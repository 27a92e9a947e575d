package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"handcrafted-haven/internal/domain"
	usersvc "handcrafted-haven/internal/service/user"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        *domain.User `json:"user"`
}

func (h *handler) register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.deps.AuthSvc.Register(c.Request.Context(), usersvc.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, token, err := h.deps.AuthSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   h.deps.AuthSvc.AccessTTLSeconds(),
		User:        user,
	})
}

func (h *handler) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}
