package handlers

import (
	"EatBefore/domain"
	"EatBefore/internal/api/presenters"
	"EatBefore/pkg/grocery"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	GroceryHandler interface {
		AddGroceryItem(c *fiber.Ctx) error
		GetGroceryItems(c *fiber.Ctx) error
		GetGroceryItemDetails(c *fiber.Ctx) error
		GetDashboardStats(c *fiber.Ctx) error
		GetTiers(c *fiber.Ctx) error
	}

	groceryHandler struct {
		groceryService grocery.GroceryService
		validator      *validator.Validate
	}
)

func NewGroceryHandler(groceryService grocery.GroceryService, validator *validator.Validate) GroceryHandler {
	return &groceryHandler{
		groceryService: groceryService,
		validator:      validator,
	}
}

func (h *groceryHandler) AddGroceryItem(c *fiber.Ctx) error {
	req := new(domain.AddGroceryItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddGroceryItem, err)
	}

	res, err := h.groceryService.AddGroceryItem(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedAddGroceryItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddGroceryItem)
}

func (h *groceryHandler) GetGroceryItems(c *fiber.Ctx) error {
	filter := new(domain.GroceryFilter)
	if err := c.QueryParser(filter); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	items, err := h.groceryService.GetGroceryItems(c.Context(), *filter)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetGroceryItems, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"total": len(items),
	}, fiber.StatusOK, domain.MessageSuccessGetGroceryItems)
}

func (h *groceryHandler) GetGroceryItemDetails(c *fiber.Ctx) error {
	item, err := h.groceryService.GetGroceryItemByID(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetGroceryItems, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetGroceryItems)
}

func (h *groceryHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.groceryService.GetDashboardStats(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetGroceryItems, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDashboardStats)
}

func (h *groceryHandler) GetTiers(c *fiber.Ctx) error {
	return presenters.SuccessResponse(c, h.groceryService.GetTiers(), fiber.StatusOK, domain.MessageSuccessGetTiers)
}
