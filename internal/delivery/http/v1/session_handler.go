package v1

import (
	"net/http"

	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessions *SessionStore
}

// NewSessionHandler registers the session lifecycle endpoint.
func NewSessionHandler(r *gin.RouterGroup, sessions *SessionStore) {
	handler := &SessionHandler{sessions: sessions}
	r.DELETE("/session", handler.SignOut)
}

// SignOut godoc
// @Summary      Clear the sign-in session
// @Description  Drops the server-side grid state for the user. The next authenticated call starts from an empty collection.
// @Tags         session
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /session [delete]
// @Security     BearerAuth
func (h *SessionHandler) SignOut(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if h.sessions.Clear(userID) {
		requestID, _ := c.Get("RequestID")
		reqIDStr, _ := requestID.(string)
		security.DefaultLogger().LogSessionCleared(c.Request.Context(), userID, c.ClientIP(), reqIDStr)
	}

	response.Success(c, http.StatusOK, "Signed out", nil)
}
