package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/art-school-server/internal/application"
	"github.com/oksasatya/art-school-server/pkg/response"
)

type AuthHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewAuthHandler(users *application.UserService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Logger: logger}
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Token handles POST /jwt. The JSON object body becomes the token's claims;
// "password" is checked and never signed.
func (h *AuthHandler) Token(c *gin.Context) {
	var identity map[string]any
	if err := c.ShouldBindJSON(&identity); err != nil || identity == nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", nil)
		return
	}
	password, _ := identity["password"].(string)
	delete(identity, "password")

	token, err := h.Users.IssueToken(c.Request.Context(), identity, password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, tokenResponse{Token: token})
}

// Banner handles GET /.
func Banner(c *gin.Context) {
	c.String(http.StatusOK, "This is Art-school server")
}
