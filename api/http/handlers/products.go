package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/drelaann/simple-ecommerce-api/api/http/presenter"
	"github.com/drelaann/simple-ecommerce-api/pkg/product"
)

type ProductHandler struct {
	useCase product.UseCase
}

func NewProductHandler(useCase product.UseCase) *ProductHandler {
	return &ProductHandler{useCase: useCase}
}

// Create adds a product to the catalogue.
// @Summary Create product
// @Tags    products
// @Accept  json
// @Produce json
// @Param   input body createProductRequest true "product payload"
// @Success 201 {object} productResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if problems := req.validate(); len(problems) > 0 {
		return presenter.Invalid(c, problems)
	}

	p, err := h.useCase.Create(c.UserContext(), req.command())
	if err != nil {
		return internalError(c, "failed to create product", err)
	}
	return presenter.JSON(c, http.StatusCreated, toProductResponse(p))
}

// List returns products. A non-empty search takes precedence over active_only.
// @Summary List products
// @Tags    products
// @Produce json
// @Param   skip        query int    false "offset"
// @Param   limit       query int    false "page size (1-100)"
// @Param   active_only query bool   false "only active products"
// @Param   search      query string false "case-insensitive name substring"
// @Success 200 {array} productResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, err := parsePage(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	activeOnly := false
	if v := strings.TrimSpace(c.Query("active_only")); v != "" {
		if activeOnly, err = strconv.ParseBool(v); err != nil {
			return presenter.Error(c, http.StatusBadRequest, "active_only must be a boolean")
		}
	}

	ctx := c.UserContext()
	var products []product.Product
	switch search := c.Query("search"); {
	case search != "":
		products, err = h.useCase.Search(ctx, search, page)
	case activeOnly:
		products, err = h.useCase.ListActive(ctx, page)
	default:
		products, err = h.useCase.List(ctx, page)
	}
	if err != nil {
		return internalError(c, "failed to list products", err)
	}
	return presenter.JSON(c, http.StatusOK, toProductResponses(products))
}

// Get returns one product.
// @Summary Get product
// @Tags    products
// @Produce json
// @Param   id path int true "product id"
// @Success 200 {object} productResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /products/{id} [get]
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	p, err := h.useCase.Get(c.UserContext(), id)
	if err != nil {
		return internalError(c, "failed to get product", err)
	}
	return h.respond(c, p)
}

// Update applies a partial update.
// @Summary Update product
// @Tags    products
// @Accept  json
// @Produce json
// @Param   id    path int true "product id"
// @Param   input body updateProductRequest true "fields to change"
// @Success 200 {object} productResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	var req updateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if problems := req.validate(); len(problems) > 0 {
		return presenter.Invalid(c, problems)
	}

	p, err := h.useCase.Update(c.UserContext(), id, req.command())
	if err != nil {
		return internalError(c, "failed to update product", err)
	}
	return h.respond(c, p)
}

// Delete removes a product.
// @Summary Delete product
// @Tags    products
// @Param   id path int true "product id"
// @Success 204
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	deleted, err := h.useCase.Delete(c.UserContext(), id)
	if err != nil {
		return internalError(c, "failed to delete product", err)
	}
	if !deleted {
		return presenter.Error(c, http.StatusNotFound, "product not found")
	}
	return c.SendStatus(http.StatusNoContent)
}

// UpdateStock sets the stock level to an absolute quantity.
// @Summary Set product stock
// @Tags    products
// @Produce json
// @Param   id       path  int true "product id"
// @Param   quantity query int true "new stock level (>= 0)"
// @Success 200 {object} productResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /products/{id}/stock [patch]
func (h *ProductHandler) UpdateStock(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(c.Query("quantity")))
	if err != nil || quantity < 0 {
		return presenter.Error(c, http.StatusBadRequest, "quantity must be an integer >= 0")
	}

	p, err := h.useCase.UpdateStock(c.UserContext(), id, quantity)
	if err != nil {
		return internalError(c, "failed to update stock", err)
	}
	return h.respond(c, p)
}

func (h *ProductHandler) respond(c *fiber.Ctx, p *product.Product) error {
	if p == nil {
		return presenter.Error(c, http.StatusNotFound, "product not found")
	}
	return presenter.JSON(c, http.StatusOK, toProductResponse(p))
}
