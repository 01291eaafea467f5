package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trustboard-backend/internal/domains/influencer"
	"trustboard-backend/internal/domains/social"
	"trustboard-backend/internal/shared/response"
)

type SocialHandler struct {
	oauth    social.OAuthService
	analyzer social.AnalyzerService
}

func NewSocialHandler(oauth social.OAuthService, analyzer social.AnalyzerService) *SocialHandler {
	return &SocialHandler{oauth: oauth, analyzer: analyzer}
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetAuthURL handles GET /v1/social/auth/:platform/url. The caller's user id
// rides along as OAuth state so the callback can attribute the grant.
func (h *SocialHandler) GetAuthURL(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.Unauthorized(c, "missing user identity")
		return
	}

	resp, err := h.oauth.GetAuthURL(c.Param("platform"), userID.String())
	if err != nil {
		response.ErrorResponse(c, social.GetHTTPStatusCode(err), "SOCIAL_ERROR", social.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Callback handles GET /v1/social/auth/:platform/callback?code=...
func (h *SocialHandler) Callback(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.Unauthorized(c, "missing user identity")
		return
	}

	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "missing authorization code")
		return
	}

	resp, err := h.oauth.HandleCallback(c.Request.Context(), userID, c.Param("platform"), code)
	if err != nil {
		response.ErrorResponse(c, social.GetHTTPStatusCode(err), "SOCIAL_ERROR", social.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListConnections handles GET /v1/social/connections.
func (h *SocialHandler) ListConnections(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.Unauthorized(c, "missing user identity")
		return
	}

	resp, err := h.oauth.ListConnections(c.Request.Context(), userID)
	if err != nil {
		response.ErrorResponse(c, social.GetHTTPStatusCode(err), "SOCIAL_ERROR", social.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Disconnect handles DELETE /v1/social/connections/:platform.
func (h *SocialHandler) Disconnect(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.Unauthorized(c, "missing user identity")
		return
	}

	if err := h.oauth.Disconnect(c.Request.Context(), userID, c.Param("platform")); err != nil {
		response.ErrorResponse(c, social.GetHTTPStatusCode(err), "SOCIAL_ERROR", social.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"disconnected": true})
}

// Analyze handles POST /v1/social/analyze/:platform/:username. Returns the
// tracked influencer, ingesting or refreshing it when needed.
func (h *SocialHandler) Analyze(c *gin.Context) {
	resp, err := h.analyzer.Analyze(c.Request.Context(), c.Param("platform"), c.Param("username"))
	if err != nil {
		// Analysis errors come from the influencer domain.
		response.ErrorResponse(c, influencer.GetHTTPStatusCode(err), "SOCIAL_ERROR", influencer.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, resp)
}
