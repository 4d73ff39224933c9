package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/drelaann/simple-ecommerce-api/api/http/presenter"
	"github.com/drelaann/simple-ecommerce-api/pkg/security/jwt"
	"github.com/drelaann/simple-ecommerce-api/pkg/security/password"
	"github.com/drelaann/simple-ecommerce-api/pkg/user"
)

type UserHandler struct {
	useCase user.UseCase
}

func NewUserHandler(useCase user.UseCase) *UserHandler {
	return &UserHandler{useCase: useCase}
}

// Create registers a new account.
// @Summary Create user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body createUserRequest true "user payload"
// @Success 201 {object} userResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if problems := req.validate(); len(problems) > 0 {
		return presenter.Invalid(c, problems)
	}

	u, err := h.useCase.Create(c.UserContext(), req.command())
	if err != nil {
		return h.writeError(c, err, "failed to create user")
	}
	return presenter.JSON(c, http.StatusCreated, toUserResponse(u))
}

// List returns a page of users ordered by id.
// @Summary List users
// @Tags    users
// @Produce json
// @Param   skip  query int false "offset"
// @Param   limit query int false "page size (1-100)"
// @Success 200 {array} userResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	users, err := h.useCase.List(c.UserContext(), page)
	if err != nil {
		return internalError(c, "failed to list users", err)
	}
	return presenter.JSON(c, http.StatusOK, toUserResponses(users))
}

// Get returns one user.
// @Summary Get user
// @Tags    users
// @Produce json
// @Param   id path int true "user id"
// @Success 200 {object} userResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	return h.respondWith(c, id)
}

// Me returns the user behind the bearer token.
// @Summary Current user
// @Tags    users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /users/me [get]
func (h *UserHandler) Me(c *fiber.Ctx) error {
	id, ok := c.Locals(jwt.LocalUserID).(int64)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "unauthorized")
	}
	return h.respondWith(c, id)
}

// Update applies a partial update. Omitted fields are left untouched.
// @Summary Update user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   id    path int true "user id"
// @Param   input body updateUserRequest true "fields to change"
// @Success 200 {object} userResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if problems := req.validate(); len(problems) > 0 {
		return presenter.Invalid(c, problems)
	}

	u, err := h.useCase.Update(c.UserContext(), id, req.command())
	if err != nil {
		return h.writeError(c, err, "failed to update user")
	}
	if u == nil {
		return presenter.Error(c, http.StatusNotFound, "user not found")
	}
	return presenter.JSON(c, http.StatusOK, toUserResponse(u))
}

// Delete removes a user.
// @Summary Delete user
// @Tags    users
// @Param   id path int true "user id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	deleted, err := h.useCase.Delete(c.UserContext(), id)
	if err != nil {
		return internalError(c, "failed to delete user", err)
	}
	if !deleted {
		return presenter.Error(c, http.StatusNotFound, "user not found")
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *UserHandler) respondWith(c *fiber.Ctx, id int64) error {
	u, err := h.useCase.Get(c.UserContext(), id)
	if err != nil {
		return internalError(c, "failed to get user", err)
	}
	if u == nil {
		return presenter.Error(c, http.StatusNotFound, "user not found")
	}
	return presenter.JSON(c, http.StatusOK, toUserResponse(u))
}

func (h *UserHandler) writeError(c *fiber.Ctx, err error, message string) error {
	var dup *user.DuplicateError
	switch {
	case errors.As(err, &dup):
		return presenter.Error(c, http.StatusBadRequest, dup.Error())
	case errors.Is(err, user.ErrDuplicateIdentity):
		return presenter.Error(c, http.StatusBadRequest, "email or username already registered")
	case errors.Is(err, password.ErrTooLong):
		return presenter.Invalid(c, []string{passwordTooLong})
	default:
		return internalError(c, message, err)
	}
}
