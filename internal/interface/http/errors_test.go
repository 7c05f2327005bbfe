package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/art-school-server/internal/application"
	"github.com/oksasatya/art-school-server/internal/domain/entity"
	"github.com/oksasatya/art-school-server/pkg/response"
)

func TestWriteError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tests := []struct {
		err     error
		status  int
		message string
	}{
		{application.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{application.ErrOwnerMismatch, http.StatusForbidden, "forbidden access"},
		{application.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{application.ErrClassNotFound, http.StatusNotFound, "class not found"},
		{application.ErrDuplicateIdentity, http.StatusConflict, "user already exists"},
		{application.ErrInvalidID, http.StatusBadRequest, "invalid id"},
		{application.ErrInvalidAmount, http.StatusBadRequest, "invalid payment amount"},
		{entity.ErrInvalidRole, http.StatusBadRequest, "invalid role"},
		{fmt.Errorf("%w: card_declined sk_test_123", application.ErrUpstreamGateway), http.StatusBadGateway, "payment processor unavailable"},
		{application.ErrUploadUnavailable, http.StatusServiceUnavailable, "image storage not configured"},
		{errors.New("connection reset by peer"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			writeError(c, logger, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body response.ErrorBody
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.True(t, body.Error)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}
