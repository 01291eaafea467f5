package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trustboard-backend/internal/domains/claim"
	"trustboard-backend/internal/shared/response"
)

type ClaimHandler struct {
	service claim.Service
}

func NewClaimHandler(svc claim.Service) *ClaimHandler {
	return &ClaimHandler{service: svc}
}

// Create handles POST /v1/claims.
func (h *ClaimHandler) Create(c *gin.Context) {
	var req claim.CreateClaimReq
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
		response.ErrorResponse(c, claim.GetHTTPStatusCode(err), "CLAIM_ERROR", claim.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// GetByID handles GET /v1/claims/:id.
func (h *ClaimHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid claim id")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ErrorResponse(c, claim.GetHTTPStatusCode(err), "CLAIM_ERROR", claim.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// List handles GET /v1/claims.
func (h *ClaimHandler) List(c *gin.Context) {
	var filter claim.ListFilter
	if err := c.BindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		response.ErrorResponse(c, claim.GetHTTPStatusCode(err), "CLAIM_ERROR", claim.GetErrorMessage(err))
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, resp.Items, &response.Meta{
		Limit: resp.Limit,
		Total: int(resp.Total),
	})
}

// Update handles PUT /v1/claims/:id.
func (h *ClaimHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid claim id")
		return
	}

	var req claim.UpdateClaimReq
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
		response.ErrorResponse(c, claim.GetHTTPStatusCode(err), "CLAIM_ERROR", claim.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Delete handles DELETE /v1/claims/:id.
func (h *ClaimHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid claim id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.ErrorResponse(c, claim.GetHTTPStatusCode(err), "CLAIM_ERROR", claim.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// AddStudy handles POST /v1/claims/:id/studies.
func (h *ClaimHandler) AddStudy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid claim id")
		return
	}

	var req claim.StudyReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	resp, err := h.service.AddStudy(c.Request.Context(), id, &req)
	if err != nil {
		response.ErrorResponse(c, claim.GetHTTPStatusCode(err), "CLAIM_ERROR", claim.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Verify handles POST /v1/claims/:id/verify.
func (h *ClaimHandler) Verify(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid claim id")
		return
	}

	resp, err := h.service.Verify(c.Request.Context(), id)
	if err != nil {
		response.ErrorResponse(c, claim.GetHTTPStatusCode(err), "CLAIM_ERROR", claim.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, resp)
}
