package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/drelaann/simple-ecommerce-api/api/http/presenter"
	"github.com/drelaann/simple-ecommerce-api/pkg/user"
)

type AuthHandler struct {
	useCase user.UseCase
	tokens  user.TokenGenerator
	ttl     time.Duration
}

func NewAuthHandler(useCase user.UseCase, tokens user.TokenGenerator, ttl time.Duration) *AuthHandler {
	return &AuthHandler{useCase: useCase, tokens: tokens, ttl: ttl}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Login exchanges a username and password for an access token.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} tokenResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return presenter.Error(c, http.StatusBadRequest, "username and password are required")
	}

	ctx := c.UserContext()
	u, err := h.useCase.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return internalError(c, "failed to login", err)
	}
	if u == nil {
		return presenter.Error(c, http.StatusUnauthorized, "invalid credentials")
	}
	if !h.useCase.IsActive(u) {
		return presenter.Error(c, http.StatusForbidden, "inactive user")
	}

	token, err := h.tokens.Generate(ctx, *u)
	if err != nil {
		return internalError(c, "failed to issue token", err)
	}
	return presenter.JSON(c, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(h.ttl / time.Second),
	})
}
