package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"tradeline-calculator/domain"
	"tradeline-calculator/service"
)

type UtilizationHandler struct {
	service  *service.UtilizationService
	share    *service.ShareService
	validate *validator.Validate
}

func NewUtilizationHandler(
	utilizationService *service.UtilizationService,
	shareService *service.ShareService,
) *UtilizationHandler {
	return &UtilizationHandler{
		service:  utilizationService,
		share:    shareService,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

type shareResponse struct {
	Text string `json:"text"`
}

type historyResponse struct {
	Records []domain.CalculationRecord `json:"records"`
}

// Calculate reports the result for the submitted form, or awaiting_input
// while the form is incomplete.
func (h *UtilizationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.evaluate(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, ev.Outcome())
}

func (h *UtilizationHandler) Share(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.evaluate(w, r)
	if !ok {
		return
	}

	text, err := h.share.Share(r.Context(), ev)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, shareResponse{Text: text})
}

// Export answers with the export file as an attachment. The format query
// parameter selects json (default) or yaml.
func (h *UtilizationHandler) Export(w http.ResponseWriter, r *http.Request) {
	ev, ok := h.evaluate(w, r)
	if !ok {
		return
	}

	format := service.ExportFormat(strings.ToLower(r.URL.Query().Get("format")))
	exporter := service.NewExportService(&downloadExporter{w: w})
	if _, err := exporter.Export(r.Context(), ev, format); err != nil {
		h.fail(w, r, err)
	}
}

func (h *UtilizationHandler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.History(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	render.JSON(w, r, historyResponse{Records: records})
}

// evaluate decodes and validates the request body. On failure the error
// response is already written.
func (h *UtilizationHandler) evaluate(w http.ResponseWriter, r *http.Request) (service.Evaluation, bool) {
	var input domain.UtilizationInput
	if err := render.DecodeJSON(r.Body, &input); err != nil {
		zap.S().Named("utilization_handler").Debugw("error decoding request body", "error", err)
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return service.Evaluation{}, false
	}

	if err := h.validate.Struct(input); err != nil {
		writeError(w, r, http.StatusBadRequest, validationMessage(err))
		return service.Evaluation{}, false
	}

	ev, err := h.service.Evaluate(r.Context(), input)
	if err != nil {
		h.fail(w, r, err)
		return service.Evaluation{}, false
	}
	return ev, true
}

func (h *UtilizationHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownTargetMode), errors.Is(err, service.ErrUnknownFormat):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNothingToShare), errors.Is(err, service.ErrNothingToExport):
		writeError(w, r, http.StatusConflict, err.Error())
	default:
		zap.S().Named("utilization_handler").Errorw("request failed", "path", r.URL.Path, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Tag() == "oneof" {
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

// downloadExporter writes the export as an attachment on the response.
type downloadExporter struct {
	w http.ResponseWriter
}

func (d *downloadExporter) Export(_ context.Context, filename, contentType string, data []byte) error {
	d.w.Header().Set("Content-Type", contentType)
	d.w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	d.w.WriteHeader(http.StatusOK)
	if _, err := d.w.Write(data); err != nil {
		zap.S().Named("utilization_handler").Warnw("error writing export", "error", err)
	}
	return nil
}
