package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-contact-relay/config"
	v1 "go-contact-relay/internal/delivery/http/v1"
	"go-contact-relay/internal/domain"
	"go-contact-relay/internal/usecase"
	"go-contact-relay/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockContactUC struct {
	mock.Mock
}

func (m *mockContactUC) SendContactMessage(ctx context.Context, sub *domain.ContactSubmission, clientIP string) error {
	return m.Called(ctx, sub, clientIP).Error(0)
}

func newRouter(uc domain.ContactUsecase) *gin.Engine {
	return v1.NewRouter(v1.RouterDeps{
		ContactUC: uc,
		HealthUC:  usecase.NewHealthUsecase(),
		Config: &config.Config{
			AllowedOrigins: []string{"https://www.example.org"},
		},
	})
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/send-email", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSendEmailEndpoint(t *testing.T) {
	validBody := `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","message":"Hello, a question.","captchaToken":"tok"}`

	t.Run("success", func(t *testing.T) {
		uc := new(mockContactUC)
		uc.On("SendContactMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		w := postJSON(newRouter(uc), validBody)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Email sent successfully", body["message"])
	})

	t.Run("policy rejection maps to 400 with the specific reason", func(t *testing.T) {
		uc := new(mockContactUC)
		uc.On("SendContactMessage", mock.Anything, mock.Anything, mock.Anything).
			Return(apperror.BadRequest(usecase.MsgAllFieldsRequired))

		w := postJSON(newRouter(uc), validBody)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, usecase.MsgAllFieldsRequired, body["error"])
	})

	t.Run("relay failure maps to 500 with a generic reason", func(t *testing.T) {
		uc := new(mockContactUC)
		uc.On("SendContactMessage", mock.Anything, mock.Anything, mock.Anything).
			Return(apperror.Internal(usecase.MsgSendFailed, assert.AnError))

		w := postJSON(newRouter(uc), validBody)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, usecase.MsgSendFailed, body["error"])
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})

	t.Run("malformed body is a 400 without reaching the usecase", func(t *testing.T) {
		uc := new(mockContactUC)

		w := postJSON(newRouter(uc), `{not json`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "SendContactMessage", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("oversized body is rejected by the transport layer", func(t *testing.T) {
		uc := new(mockContactUC)
		huge := `{"message":"` + strings.Repeat("a", 11*1024) + `"}`

		w := postJSON(newRouter(uc), huge)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		uc.AssertNotCalled(t, "SendContactMessage", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHealthEndpoint(t *testing.T) {
	uc := new(mockContactUC)
	router := newRouter(uc)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Server is running", body["message"])
}

func TestCORS(t *testing.T) {
	uc := new(mockContactUC)
	router := newRouter(uc)

	t.Run("allowed origin preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/send-email", nil)
		req.Header.Set("Origin", "https://www.example.org")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://www.example.org", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disallowed origin preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/send-email", nil)
		req.Header.Set("Origin", "https://evil.example.net")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("request with no origin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
