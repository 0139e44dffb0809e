package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"buildinghealth_backend/internal/building/domain"
	"buildinghealth_backend/internal/building/transport"
	"buildinghealth_backend/platform/httpkit"
	"buildinghealth_backend/platform/validator"
)

const (
	msgBBLRequired    = "BBL parameter required"
	msgInvalidBBL     = "Invalid BBL format"
	msgInvalidRequest = "invalid request"
	msgInvalidLimit   = "limit must be between 1 and 100"
)

// Service is the building service used by the handler.
type Service interface {
	Lookup(ctx context.Context, bbl domain.BBL) (*transport.Report, error)
	History(ctx context.Context, bbl domain.BBL, limit int) (transport.HistoryResponse, error)
}

// Handler handles HTTP requests for building reports.
type Handler struct {
	svc Service
	val *validator.Validator
}

// New creates a new building handler.
func New(svc Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Lookup returns the health report of one building.
// GET /api/building?bbl=
func (h *Handler) Lookup(c *gin.Context) {
	var req transport.LookupRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	bbl, ok := h.bbl(c, req)
	if !ok {
		return
	}

	report, err := h.svc.Lookup(c.Request.Context(), bbl)
	if err != nil {
		c.Writer.Header().Del("Cache-Control")
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, report)
}

// History lists recent lookups of one building.
// GET /api/building/history?bbl=&limit=
func (h *Handler) History(c *gin.Context) {
	var req transport.HistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		fields := validator.FieldErrors(err)
		if _, bad := fields["limit"]; bad {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidLimit, fields)
			return
		}
	}
	bbl, ok := h.bbl(c, transport.LookupRequest{BBL: req.BBL})
	if !ok {
		return
	}

	result, err := h.svc.History(c.Request.Context(), bbl, req.Limit)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// bbl validates and normalizes the bbl parameter, answering 400 on failure.
func (h *Handler) bbl(c *gin.Context, req transport.LookupRequest) (domain.BBL, bool) {
	if err := h.val.Struct(req); err != nil {
		msg := msgInvalidBBL
		if validator.FieldErrors(err)["bbl"] == "required" {
			msg = msgBBLRequired
		}
		httpkit.Error(c, http.StatusBadRequest, msg, nil)
		return "", false
	}
	bbl, err := domain.ParseBBL(req.BBL)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidBBL, nil)
		return "", false
	}
	return bbl, true
}

// RegisterValidations adds the bbl tag to val.
func RegisterValidations(val *validator.Validator) error {
	return val.RegisterValidation("bbl", validBBL)
}
