package handlers

import (
	"EatBefore/domain"
	"EatBefore/internal/api/presenters"
	"EatBefore/pkg/grocery"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"io"
)

type (
	DraftHandler interface {
		CreateDraft(c *fiber.Ctx) error
		GetDraft(c *fiber.Ctx) error
		UpdateDraft(c *fiber.Ctx) error
		RecognizeDraft(c *fiber.Ctx) error
		SaveDraft(c *fiber.Ctx) error
		DiscardDraft(c *fiber.Ctx) error
	}

	draftHandler struct {
		groceryService grocery.GroceryService
		validator      *validator.Validate
	}
)

func NewDraftHandler(groceryService grocery.GroceryService, validator *validator.Validate) DraftHandler {
	return &draftHandler{
		groceryService: groceryService,
		validator:      validator,
	}
}

func (h *draftHandler) CreateDraft(c *fiber.Ctx) error {
	draft, err := h.groceryService.CreateDraft(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedCreateDraft, err)
	}

	return presenters.SuccessResponse(c, draft, fiber.StatusCreated, domain.MessageSuccessCreateDraft)
}

func (h *draftHandler) GetDraft(c *fiber.Ctx) error {
	draft, err := h.groceryService.GetDraft(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetDraft, err)
	}

	return presenters.SuccessResponse(c, draft, fiber.StatusOK, domain.MessageSuccessGetDraft)
}

func (h *draftHandler) UpdateDraft(c *fiber.Ctx) error {
	req := new(domain.UpdateDraftRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDraft, err)
	}

	draft, err := h.groceryService.UpdateDraft(c.Context(), c.Params("id"), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedUpdateDraft, err)
	}

	return presenters.SuccessResponse(c, draft, fiber.StatusOK, domain.MessageSuccessUpdateDraft)
}

func (h *draftHandler) RecognizeDraft(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, domain.ErrMissingImage)
	}

	src, err := file.Open()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}
	defer src.Close()

	image, err := io.ReadAll(src)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	// The draft outlives the request, so the value must not alias fasthttp's buffer.
	imageRef := utils.CopyString(c.FormValue("image_ref"))
	if imageRef == "" {
		imageRef = file.Filename
	}

	draft, err := h.groceryService.RecognizeDraft(c.Context(), c.Params("id"), domain.RecognizeDraftRequest{
		Image:    image,
		ImageRef: imageRef,
	})
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedRecognizeProduct, err)
	}

	return presenters.SuccessResponse(c, draft, fiber.StatusOK, domain.MessageSuccessRecognizeProduct)
}

func (h *draftHandler) SaveDraft(c *fiber.Ctx) error {
	item, err := h.groceryService.SaveDraft(c.Context(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedAddGroceryItem, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusCreated, domain.MessageSuccessAddGroceryItem)
}

func (h *draftHandler) DiscardDraft(c *fiber.Ctx) error {
	if err := h.groceryService.DiscardDraft(c.Context(), c.Params("id")); err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedDiscardDraft, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDiscardDraft)
}
