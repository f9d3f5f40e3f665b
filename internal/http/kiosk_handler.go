package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"kiosk-data/internal/domain"
	"kiosk-data/internal/repository"
	"kiosk-data/internal/service"
)

// genericSubmitError shown to the visitor for any persistence failure. The
// failing step is logged, never surfaced.
const genericSubmitError = "Registration failed. Please try again."

// KioskHandler HTTP surface for the registration kiosk.
type KioskHandler struct {
	catalog      *service.CatalogService
	registration service.RegistrationService
	collector    *service.MetadataCollector
	visitors     repository.VisitorsRepository
	logger       *zap.Logger
}

func NewKioskHandler(
	catalog *service.CatalogService,
	registration service.RegistrationService,
	collector *service.MetadataCollector,
	visitors repository.VisitorsRepository,
	logger *zap.Logger,
) *KioskHandler {
	return &KioskHandler{
		catalog:      catalog,
		registration: registration,
		collector:    collector,
		visitors:     visitors,
		logger:       logger,
	}
}

// programsResponse catalog payload for the selector UI.
type programsResponse struct {
	Source   string                `json:"source"`
	Programs []domain.Program      `json:"programs"`
	Groups   []domain.ProgramGroup `json:"groups"`
}

// GetPrograms GET /kiosk/api/v1/programs
func (h *KioskHandler) GetPrograms(w http.ResponseWriter, r *http.Request) {
	programs, source := h.catalog.FetchPrograms(r.Context())
	writeJSON(w, http.StatusOK, Ok(programsResponse{
		Source:   string(source),
		Programs: programs,
		Groups:   service.GroupByCategory(programs),
	}))
}

// submitResponse outcome of one submission attempt.
type submitResponse struct {
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
	VisitorID string            `json:"visitorId,omitempty"`
}

// SubmitRegistration POST /kiosk/api/v1/registrations
//
// validate -> collect metadata -> submit. Field errors come back inline so
// the form can attach them to the offending inputs; a persistence failure is
// a single generic message.
func (h *KioskHandler) SubmitRegistration(w http.ResponseWriter, r *http.Request) {
	var form domain.VisitorFormData
	if err := readBodyJSON(r, 1<<20, &form); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid body"))
		return
	}

	if errs := service.ValidateVisitorForm(form); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, submitResponse{Success: false, Errors: errs})
		return
	}

	md := h.collector.Collect(r.Context(), r.UserAgent())

	result := h.registration.Submit(r.Context(), form, md)
	if !result.Success {
		// detail already logged by the service
		writeJSON(w, http.StatusOK, submitResponse{Success: false, Error: genericSubmitError})
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{Success: true, VisitorID: result.VisitorID})
}

// GetVisitor GET /kiosk/api/v1/registrations/{id}
func (h *KioskHandler) GetVisitor(w http.ResponseWriter, r *http.Request, visitorID string) {
	details, err := h.visitors.GetVisitorDetails(r.Context(), visitorID)
	if err != nil {
		if err == repository.ErrVisitorNotFound {
			writeJSON(w, http.StatusNotFound, Fail("visitor not found"))
			return
		}
		h.logger.Error("Failed to fetch visitor details", zap.Error(err), zap.String("visitor_id", visitorID))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to fetch visitor"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(details))
}

// ConvertVisitor POST /kiosk/api/v1/registrations/{id}/convert
func (h *KioskHandler) ConvertVisitor(w http.ResponseWriter, r *http.Request, visitorID string) {
	if err := h.visitors.MarkConverted(r.Context(), visitorID); err != nil {
		if err == repository.ErrVisitorNotFound {
			writeJSON(w, http.StatusNotFound, Fail("visitor not found"))
			return
		}
		h.logger.Error("Failed to mark visitor converted", zap.Error(err), zap.String("visitor_id", visitorID))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to mark visitor converted"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]bool{"converted": true}))
}

// ExportRegistrations GET /kiosk/api/v1/registrations/export
func (h *KioskHandler) ExportRegistrations(w http.ResponseWriter, r *http.Request) {
	rows, err := h.visitors.ListRegistrations(r.Context())
	if err != nil {
		h.logger.Error("Failed to list registrations for export", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to export registrations"))
		return
	}

	data, err := GenerateRegistrationExport(rows)
	if err != nil {
		h.logger.Error("Failed to generate registration export", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to export registrations"))
		return
	}

	filename := fmt.Sprintf("registrations_%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, _ = w.Write(data)
}
