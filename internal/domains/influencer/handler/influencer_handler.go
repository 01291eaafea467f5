package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trustboard-backend/internal/domains/influencer"
	"trustboard-backend/internal/shared/response"
)

type InfluencerHandler struct {
	service influencer.Service
}

func NewInfluencerHandler(svc influencer.Service) *InfluencerHandler {
	return &InfluencerHandler{service: svc}
}

// Create handles POST /v1/influencers.
func (h *InfluencerHandler) Create(c *gin.Context) {
	var req influencer.CreateInfluencerReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.ErrorResponse(c, influencer.GetHTTPStatusCode(err), "INFLUENCER_ERROR", influencer.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// GetByID handles GET /v1/influencers/:id.
func (h *InfluencerHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid influencer id")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ErrorResponse(c, influencer.GetHTTPStatusCode(err), "INFLUENCER_ERROR", influencer.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Search handles GET /v1/influencers.
func (h *InfluencerHandler) Search(c *gin.Context) {
	var filter influencer.SearchFilter
	if err := c.BindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Search(c.Request.Context(), &filter)
	if err != nil {
		response.ErrorResponse(c, influencer.GetHTTPStatusCode(err), "INFLUENCER_ERROR", influencer.GetErrorMessage(err))
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, resp.Items, &response.Meta{
		Limit: resp.Limit,
		Total: int(resp.Total),
	})
}

// FindByHandle handles GET /v1/influencers/search. Unlike Search this is an
// exact (username, platform) lookup and returns 404 when no match exists.
func (h *InfluencerHandler) FindByHandle(c *gin.Context) {
	username := c.Query("username")
	platform := c.Query("platform")
	if username == "" || platform == "" {
		response.BadRequest(c, "username and platform are required")
		return
	}

	resp, err := h.service.GetByHandle(c.Request.Context(), username, platform)
	if err != nil {
		response.ErrorResponse(c, influencer.GetHTTPStatusCode(err), "INFLUENCER_ERROR", influencer.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Update handles PUT /v1/influencers/:id.
func (h *InfluencerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid influencer id")
		return
	}

	var req influencer.UpdateInfluencerReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.ErrorResponse(c, influencer.GetHTTPStatusCode(err), "INFLUENCER_ERROR", influencer.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Delete handles DELETE /v1/influencers/:id.
func (h *InfluencerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid influencer id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ErrorResponse(c, influencer.GetHTTPStatusCode(err), "INFLUENCER_ERROR", influencer.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Refresh handles POST /v1/influencers/:id/refresh.
func (h *InfluencerHandler) Refresh(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid influencer id")
		return
	}

	resp, err := h.service.RefreshProfile(c.Request.Context(), id)
	if err != nil {
		response.ErrorResponse(c, influencer.GetHTTPStatusCode(err), "INFLUENCER_ERROR", influencer.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, resp)
}
