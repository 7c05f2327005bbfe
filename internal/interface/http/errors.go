package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/art-school-server/internal/application"
	"github.com/oksasatya/art-school-server/internal/domain/entity"
	"github.com/oksasatya/art-school-server/pkg/helpers"
	"github.com/oksasatya/art-school-server/pkg/response"
	"github.com/oksasatya/art-school-server/pkg/validation"
)

const msgInternal = "internal server error"

// writeError maps application errors to the error envelope. Upstream and store
// failures are logged and answered with a generic message.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	status, msg := http.StatusInternalServerError, msgInternal
	switch {
	case errors.Is(err, application.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, application.ErrOwnerMismatch):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, application.ErrUserNotFound), errors.Is(err, application.ErrClassNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, application.ErrDuplicateIdentity):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, application.ErrInvalidID),
		errors.Is(err, application.ErrInvalidAmount),
		errors.Is(err, application.ErrEmptyEnrollmentList),
		errors.Is(err, entity.ErrInvalidRole):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, application.ErrUpstreamGateway):
		status, msg = http.StatusBadGateway, application.ErrUpstreamGateway.Error()
	case errors.Is(err, application.ErrUploadUnavailable):
		status, msg = http.StatusServiceUnavailable, err.Error()
	}
	if status >= http.StatusInternalServerError && logger != nil {
		helpers.RequestLogger(logger, c).WithError(err).Error("request failed")
	}
	_ = c.Error(err)
	response.Error(c, status, msg, nil)
}

func writeBindError(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
