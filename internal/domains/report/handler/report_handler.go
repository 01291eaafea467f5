package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trustboard-backend/internal/domains/report"
	"trustboard-backend/internal/shared/response"
)

type ReportHandler struct {
	service report.Service
}

func NewReportHandler(svc report.Service) *ReportHandler {
	return &ReportHandler{service: svc}
}

func callerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// Create handles POST /v1/reports.
func (h *ReportHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.Unauthorized(c, "missing user identity")
		return
	}

	var req report.CreateReportReq
	if err := c.BindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.ErrorResponse(c, report.GetHTTPStatusCode(err), "REPORT_ERROR", report.GetErrorMessage(err))
		return
	}

	// 202: processing happens in the background; poll GetByID for status.
	response.Success(c, http.StatusAccepted, resp)
}

// GetByID handles GET /v1/reports/:id.
func (h *ReportHandler) GetByID(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.Unauthorized(c, "missing user identity")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid report id")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		response.ErrorResponse(c, report.GetHTTPStatusCode(err), "REPORT_ERROR", report.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// List handles GET /v1/reports.
func (h *ReportHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.Unauthorized(c, "missing user identity")
		return
	}

	var filter report.ListFilter
	if err := c.BindQuery(&filter); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.List(c.Request.Context(), userID, &filter)
	if err != nil {
		response.ErrorResponse(c, report.GetHTTPStatusCode(err), "REPORT_ERROR", report.GetErrorMessage(err))
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, resp.Items, &response.Meta{
		Limit: resp.Limit,
		Total: int(resp.Total),
	})
}

// Delete handles DELETE /v1/reports/:id.
func (h *ReportHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.Unauthorized(c, "missing user identity")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid report id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		response.ErrorResponse(c, report.GetHTTPStatusCode(err), "REPORT_ERROR", report.GetErrorMessage(err))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Export handles GET /v1/reports/:id/export/:format (or ?format=) and
// streams the artifact as a download.
func (h *ReportHandler) Export(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		response.Unauthorized(c, "missing user identity")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid report id")
		return
	}

	format := c.Param("format")
	if format == "" {
		format = c.Query("format")
	}

	result, err := h.service.Export(c.Request.Context(), userID, id, format)
	if err != nil {
		response.ErrorResponse(c, report.GetHTTPStatusCode(err), "REPORT_ERROR", report.GetErrorMessage(err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
