package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the error envelope every failing route returns.
// Clients only rely on Error and Message.
type ErrorBody struct {
	Error     bool        `json:"error"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

// JSON writes data as-is; successful responses are not wrapped.
func JSON[T any](ctx *gin.Context, status int, data T) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, data)
}

// Error writes the error envelope without stopping the handler chain.
func Error(ctx *gin.Context, status int, message string, details interface{}) {
	ctx.JSON(status, newErrorBody(ctx, message, details))
}

// Abort writes the error envelope and stops the remaining handlers.
func Abort(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, newErrorBody(ctx, message, nil))
}

func newErrorBody(ctx *gin.Context, message string, details interface{}) ErrorBody {
	return ErrorBody{
		Error:     true,
		Message:   message,
		RequestID: ctx.GetString("request_id"),
		Details:   details,
	}
}
