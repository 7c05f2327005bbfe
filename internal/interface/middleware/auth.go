package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/art-school-server/pkg/helpers"
	"github.com/oksasatya/art-school-server/pkg/response"
)

const (
	CtxClaimsKey    = "decoded"
	CtxUserEmailKey = "userEmail"

	msgUnauthorized = "unauthorized access"
	msgForbidden    = "forbidden access"
)

// Rejection reasons reported to Metrics.
const (
	ReasonMissingHeader = "missing_header"
	ReasonInvalidToken  = "invalid_token"
	ReasonExpiredToken  = "expired_token"
	ReasonNoIdentity    = "no_identity"
	ReasonOwnerMismatch = "owner_mismatch"
	ReasonRole          = "insufficient_role"
)

type claimsKey struct{}

// TokenVerifier is the verifying half of the token service.
type TokenVerifier interface {
	Verify(token string) (*helpers.Claims, error)
}

// Auth requires "Authorization: Bearer <token>". The second whitespace-separated field
// is the token; anything that does not verify is rejected with 401 before the handler runs.
// On success the claims are stored on the gin context and on the request context.
func Auth(verifier TokenVerifier, metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			metrics.Rejected(ReasonMissingHeader)
			response.Abort(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		var token string
		if fields := strings.Fields(header); len(fields) > 1 {
			token = fields[1]
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			reason := ReasonInvalidToken
			if errors.Is(err, helpers.ErrTokenExpired) {
				reason = ReasonExpiredToken
			}
			metrics.Rejected(reason)
			response.Abort(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}
		// every protected route is scoped to the caller's email
		if claims.Email == "" {
			metrics.Rejected(ReasonNoIdentity)
			response.Abort(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		c.Set(CtxClaimsKey, claims)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), claimsKey{}, claims))
		c.Next()
	}
}

// ClaimsFromContext returns the claims Auth stored on the request context.
func ClaimsFromContext(ctx context.Context) (*helpers.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*helpers.Claims)
	return claims, ok
}

// UserEmail is the authenticated caller, or "" outside Auth.
func UserEmail(c *gin.Context) string {
	return c.GetString(CtxUserEmailKey)
}
