//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"table-reserve/internal/handler/httperr"
	"table-reserve/internal/handler/middleware"
	"table-reserve/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandlerWritesPublicResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())

	// a handler that records the error but never writes; the middleware owns
	// the response
	router.GET("/boom", func(c *gin.Context) {
		resp := httperr.Response{Status: http.StatusConflict, Error: "Conflict"}
		_ = c.Error(assert.AnError).SetType(gin.ErrorTypePublic).SetMeta(resp)
	})

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/boom", nil)
	httptest.AssertErrorResponse(t, rec, http.StatusConflict, "Conflict")
}

func TestErrorHandlerAbortedRequestKeepsHandlerResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())

	router.GET("/boom", func(c *gin.Context) {
		httperr.AbortWithError(c, http.StatusNotFound, assert.AnError, "Reservation not found", nil)
	})

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/boom", nil)
	httptest.AssertErrorResponse(t, rec, http.StatusNotFound, "Reservation not found")
}

func TestErrorHandlerIncludesValidationFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())

	router.POST("/boom", func(c *gin.Context) {
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, assert.AnError,
			"Validation failed", map[string]string{"email": "invalid email address"})
	})

	rec := httptest.PerformRequest(t, router, http.MethodPost, "/boom", nil)
	fields := httptest.AssertValidationResponse(t, rec, "email")
	assert.Equal(t, "invalid email address", fields["email"])
}

func TestCustomRecoveryWritesInternalError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.CustomRecovery())

	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	rec := httptest.PerformRequest(t, router, http.MethodGet, "/panic", nil)
	httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
}
