package handlers

import (
	"EatBefore/domain"
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Field   string `json:"field"`
		Title   string `json:"title"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, body io.Reader) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

func newGroceryApp(service *MockGroceryService) *fiber.App {
	app := fiber.New()
	groceries := NewGroceryHandler(service, validator.New())
	drafts := NewDraftHandler(service, validator.New())

	app.Post("/groceries", groceries.AddGroceryItem)
	app.Get("/groceries", groceries.GetGroceryItems)
	app.Get("/groceries/stats", groceries.GetDashboardStats)
	app.Get("/groceries/tiers", groceries.GetTiers)
	app.Get("/groceries/:id", groceries.GetGroceryItemDetails)

	app.Post("/drafts", drafts.CreateDraft)
	app.Get("/drafts/:id", drafts.GetDraft)
	app.Patch("/drafts/:id", drafts.UpdateDraft)
	app.Delete("/drafts/:id", drafts.DiscardDraft)
	app.Post("/drafts/:id/recognize", drafts.RecognizeDraft)
	app.Post("/drafts/:id/save", drafts.SaveDraft)
	return app
}

func TestGroceryHandler_AddGroceryItem(t *testing.T) {
	banana := domain.GroceryItemResponse{ID: "1742803200000", Name: "Banana", Category: domain.CategoryFruits, DaysUntilExpiry: 2, Tier: "Urgent"}

	tests := []struct {
		name           string
		body           string
		mockReturn     domain.GroceryItemResponse
		mockError      error
		expectService  bool
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Success",
			body:           `{"name":"Banana","category":"Fruits","expiry_date":"2025-03-26","image_ref":"banana.png"}`,
			mockReturn:     banana,
			expectService:  true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Malformed body",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Validation error from the form",
			body:           `{"name":"","category":"Fruits","expiry_date":"2025-03-26","image_ref":"banana.png"}`,
			mockError:      domain.ErrMissingName,
			expectService:  true,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "MISSING_NAME",
		},
		{
			name:           "Store failure",
			body:           `{"name":"Banana","category":"Fruits","expiry_date":"2025-03-26","image_ref":"banana.png"}`,
			mockError:      &domain.StoreError{Op: "append", Kind: domain.ErrWriteFailed, Err: errors.New("quota")},
			expectService:  true,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockGroceryService)
			if tt.expectService {
				service.On("AddGroceryItem", mock.Anything, mock.AnythingOfType("domain.AddGroceryItemRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/groceries", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := newGroceryApp(service).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			env := decodeEnvelope(t, resp.Body)
			assert.Equal(t, tt.expectedStatus < 300, env.Status)
			if tt.expectedCode != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.expectedCode, env.Error.Code)
				assert.Equal(t, "Please enter a product name", env.Error.Message)
			}
			service.AssertExpectations(t)
		})
	}
}

func TestGroceryHandler_GetGroceryItems(t *testing.T) {
	service := new(MockGroceryService)
	service.On("GetGroceryItems", mock.Anything, domain.GroceryFilter{Category: "Fruits", Search: "ban"}).
		Return([]domain.GroceryItemResponse{{ID: "1", Name: "Banana"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/groceries?category=Fruits&search=ban", nil)
	resp, err := newGroceryApp(service).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	env := decodeEnvelope(t, resp.Body)
	var data struct {
		Items []domain.GroceryItemResponse `json:"items"`
		Total int                          `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.Total)
	assert.Equal(t, "Banana", data.Items[0].Name)
	service.AssertExpectations(t)
}

func TestGroceryHandler_GetGroceryItemDetailsNotFound(t *testing.T) {
	service := new(MockGroceryService)
	service.On("GetGroceryItemByID", mock.Anything, "404").
		Return(domain.GroceryItemResponse{}, domain.ErrGroceryItemNotFound)

	resp, err := newGroceryApp(service).Test(httptest.NewRequest(http.MethodGet, "/groceries/404", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGroceryHandler_StatsAndTiers(t *testing.T) {
	service := new(MockGroceryService)
	service.On("GetDashboardStats", mock.Anything).Return(domain.DashboardStatsResponse{TotalItems: 3, UrgentItems: 1}, nil)
	service.On("GetTiers").Return([]domain.TierResponse{{Tier: "Urgent", Color: "#FF6347", Width: "30%"}})
	app := newGroceryApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/groceries/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/groceries/tiers", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var tiers []domain.TierResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp.Body).Data, &tiers))
	assert.Equal(t, "#FF6347", tiers[0].Color)
	service.AssertExpectations(t)
}

func TestDraftHandler_Flow(t *testing.T) {
	service := new(MockGroceryService)
	service.On("CreateDraft", mock.Anything).Return(domain.DraftResponse{ID: "d1", Category: "Fruits"}, nil)
	service.On("UpdateDraft", mock.Anything, "d1", mock.AnythingOfType("domain.UpdateDraftRequest")).
		Return(domain.DraftResponse{ID: "d1", Name: "Banana", Category: "Fruits"}, nil)
	service.On("SaveDraft", mock.Anything, "d1").Return(domain.GroceryItemResponse{ID: "1", Name: "Banana"}, nil)
	service.On("DiscardDraft", mock.Anything, "d2").Return(domain.ErrDraftNotFound)
	app := newGroceryApp(service)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/drafts", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPatch, "/drafts/d1", strings.NewReader(`{"name":"Banana"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/drafts/d1/save", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/drafts/d2", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	service.AssertExpectations(t)
}

func TestDraftHandler_SaveBusy(t *testing.T) {
	service := new(MockGroceryService)
	service.On("SaveDraft", mock.Anything, "d1").Return(domain.GroceryItemResponse{}, domain.ErrDraftBusy)

	resp, err := newGroceryApp(service).Test(httptest.NewRequest(http.MethodPost, "/drafts/d1/save", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func multipartImage(t *testing.T, image []byte, imageRef string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", "banana.jpg")
	require.NoError(t, err)
	_, err = part.Write(image)
	require.NoError(t, err)
	if imageRef != "" {
		require.NoError(t, writer.WriteField("image_ref", imageRef))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestDraftHandler_RecognizeDraft(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	tests := []struct {
		name           string
		imageRef       string
		expectedRef    string
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Success with explicit reference",
			imageRef:       "file:///DCIM/banana.jpg",
			expectedRef:    "file:///DCIM/banana.jpg",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "File name used as reference",
			expectedRef:    "banana.jpg",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Recognition failed",
			expectedRef:    "banana.jpg",
			mockError:      &domain.EnrichmentError{Err: errors.New("timeout")},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:           "Recognition not configured",
			expectedRef:    "banana.jpg",
			mockError:      domain.ErrEnrichmentUnavailable,
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockGroceryService)
			service.On("RecognizeDraft", mock.Anything, "d1", domain.RecognizeDraftRequest{Image: image, ImageRef: tt.expectedRef}).
				Return(domain.DraftResponse{ID: "d1", Name: "Banana", ImageRef: tt.expectedRef}, tt.mockError)

			body, contentType := multipartImage(t, image, tt.imageRef)
			req := httptest.NewRequest(http.MethodPost, "/drafts/d1/recognize", body)
			req.Header.Set("Content-Type", contentType)

			resp, err := newGroceryApp(service).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			service.AssertExpectations(t)
		})
	}
}

func TestDraftHandler_RecognizeKeepsImageRefAfterRequest(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	var captured []string

	service := new(MockGroceryService)
	service.On("RecognizeDraft", mock.Anything, "d1", mock.AnythingOfType("domain.RecognizeDraftRequest")).
		Run(func(args mock.Arguments) {
			captured = append(captured, args.Get(2).(domain.RecognizeDraftRequest).ImageRef)
		}).
		Return(domain.DraftResponse{ID: "d1"}, nil)
	app := newGroceryApp(service)

	for _, ref := range []string{"file:///first.jpg", "file:///other.jpg"} {
		body, contentType := multipartImage(t, image, "")
		req := httptest.NewRequest(http.MethodPost, "/drafts/d1/recognize?image_ref="+ref, body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	assert.Equal(t, []string{"file:///first.jpg", "file:///other.jpg"}, captured)
}

func TestDraftHandler_RecognizeWithoutImage(t *testing.T) {
	service := new(MockGroceryService)

	req := httptest.NewRequest(http.MethodPost, "/drafts/d1/recognize", nil)
	resp, err := newGroceryApp(service).Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	service.AssertNotCalled(t, "RecognizeDraft", mock.Anything, mock.Anything, mock.Anything)
}
