/*
handlers.go - HTTP API handlers for the camp tracking system

PURPOSE:
  Exposes the camp engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Camps:
    GET    /api/camps                      List all camps
    POST   /api/camps                      Create camp
    GET    /api/camps/summary              Per-camp food summaries
    GET    /api/camps/{id}                 Get camp details
    GET    /api/camps/{id}/campers         Camp roster
    POST   /api/camps/{id}/campers/import  Import roster CSV (text/csv body)

  Stock:
    POST   /api/camps/{id}/topups          Append stock top-up
    GET    /api/camps/{id}/topups          Top-up history
    GET    /api/camps/{id}/stock           Effective stock (?as_of=...)
    GET    /api/camps/{id}/shortages       Day-by-day shortage report

  Alerts:
    GET    /api/alerts/shortages           Camps with shortfall days

  Leaders:
    POST   /api/leaders                    Create leader
    GET    /api/leaders/{id}               Get leader
    GET    /api/leaders/{id}/assignments   Held assignments
    POST   /api/leaders/{id}/assignments   Claim a camp
    DELETE /api/leaders/{id}/assignments/{campID}  Unassign
    GET    /api/leaders/{id}/camps/available       Claimable camps
    GET    /api/leaders/{id}/pay           Pay report

  Settings:
    GET    /api/settings/pay-rate          Read daily pay rate
    PUT    /api/settings/pay-rate          Set daily pay rate

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 409: Conflict (overlapping or duplicate assignment)
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/warp/camptrack/camps"
	"github.com/warp/camptrack/engine"
	"github.com/warp/camptrack/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store       *sqlite.Store
	Ledger      *engine.StockLedger
	Importer    *camps.ImportService
	Assignments *camps.AssignmentService
	Reports     *camps.ReportService
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:       store,
		Ledger:      engine.NewStockLedger(store, store),
		Importer:    camps.NewImportService(store),
		Assignments: camps.NewAssignmentService(store, store),
		Reports:     camps.NewReportService(store),
	}
}

// =============================================================================
// CAMP HANDLERS
// =============================================================================

// ListCamps returns all camps ordered by start date.
func (h *Handler) ListCamps(w http.ResponseWriter, r *http.Request) {
	all, err := h.Store.FetchCamps(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list camps", err)
		return
	}

	dtos := make([]CampDTO, len(all))
	for i, camp := range all {
		dtos[i] = toCampDTO(camp)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCamp returns a single camp.
func (h *Handler) GetCamp(w http.ResponseWriter, r *http.Request) {
	id := engine.CampID(chi.URLParam(r, "id"))

	camp, err := h.Store.FetchCamp(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to get camp", err)
		return
	}
	writeJSON(w, http.StatusOK, toCampDTO(*camp))
}

// CreateCamp creates a new camp.
func (h *Handler) CreateCamp(w http.ResponseWriter, r *http.Request) {
	var req CreateCampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	start, err := engine.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}
	end, err := engine.ParseDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}
	dateRange, err := engine.NewDateRange(start, end)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date range", err)
		return
	}

	baseStock, err := parseDecimalOrZero(req.BaseFoodStock)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid base_food_stock", err)
		return
	}
	foodDefault, err := parseDecimalOrZero(req.DefaultFoodPerCamper)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid default_food_per_camper", err)
		return
	}

	campType := engine.CampType(req.Type)
	if campType == "" {
		campType = engine.CampDay
	}

	camp := engine.Camp{
		ID:                   engine.CampID(req.ID),
		Name:                 req.Name,
		Location:             req.Location,
		Area:                 req.Area,
		Type:                 campType,
		Range:                dateRange,
		BaseFoodStock:        baseStock,
		DefaultFoodPerCamper: foodDefault,
	}
	if err := h.Store.SaveCamp(r.Context(), camp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create camp", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCampDTO(camp))
}

// ListCampers returns a camp's roster.
func (h *Handler) ListCampers(w http.ResponseWriter, r *http.Request) {
	id := engine.CampID(chi.URLParam(r, "id"))

	roster, err := h.Store.FetchCampers(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to list campers", err)
		return
	}

	dtos := make([]CamperDTO, len(roster))
	for i, c := range roster {
		dtos[i] = toCamperDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ImportRoster imports a roster CSV posted as the request body.
func (h *Handler) ImportRoster(w http.ResponseWriter, r *http.Request) {
	id := engine.CampID(chi.URLParam(r, "id"))

	summary, err := h.Importer.ImportRoster(r.Context(), id, r.Body)
	if err != nil {
		writeDomainError(w, "Failed to import roster", err)
		return
	}

	dto := ImportSummaryDTO{
		Created:    summary.Created,
		Linked:     summary.Linked,
		Duplicates: summary.Duplicates,
		Malformed:  make([]RejectedRowDTO, len(summary.Malformed)),
	}
	if dto.Duplicates == nil {
		dto.Duplicates = []engine.RawRow{}
	}
	for i, rej := range summary.Malformed {
		dto.Malformed[i] = RejectedRowDTO{Row: rej.Row, Reason: rej.Reason}
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// STOCK HANDLERS
// =============================================================================

// AppendTopUp appends one stock top-up to a camp's ledger.
func (h *Handler) AppendTopUp(w http.ResponseWriter, r *http.Request) {
	id := engine.CampID(chi.URLParam(r, "id"))

	var req CreateTopUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	delta, err := decimal.NewFromString(req.Delta)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid delta", err)
		return
	}

	recordedAt := time.Now().UTC()
	if req.RecordedAt != "" {
		recordedAt, err = time.Parse(time.RFC3339, req.RecordedAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid recorded_at (use RFC3339)", err)
			return
		}
	}

	if err := h.Ledger.Append(r.Context(), id, delta, recordedAt); err != nil {
		writeDomainError(w, "Failed to append top-up", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// ListTopUps returns a camp's top-up history, oldest first.
func (h *Handler) ListTopUps(w http.ResponseWriter, r *http.Request) {
	id := engine.CampID(chi.URLParam(r, "id"))

	history, err := h.Ledger.History(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to get top-ups", err)
		return
	}

	dtos := make([]TopUpDTO, len(history))
	for i, t := range history {
		dtos[i] = TopUpDTO{
			ID:         t.ID,
			CampID:     string(t.CampID),
			Delta:      t.Delta.String(),
			RecordedAt: t.RecordedAt.Format(time.RFC3339Nano),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetStock returns the camp's effective stock. The optional as_of query
// parameter accepts an RFC3339 instant or a YYYY-MM-DD date; a date means
// "as of the end of that day".
func (h *Handler) GetStock(w http.ResponseWriter, r *http.Request) {
	id := engine.CampID(chi.URLParam(r, "id"))

	var asOf *time.Time
	raw := r.URL.Query().Get("as_of")
	if raw != "" {
		instant, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			day, derr := engine.ParseDate(raw)
			if derr != nil {
				writeError(w, http.StatusBadRequest, "Invalid as_of (use RFC3339 or YYYY-MM-DD)", err)
				return
			}
			instant = day.EndOfDay()
		}
		asOf = &instant
	}

	stock, err := h.Ledger.EffectiveStock(r.Context(), id, asOf)
	if err != nil {
		writeDomainError(w, "Failed to compute stock", err)
		return
	}
	writeJSON(w, http.StatusOK, StockDTO{
		CampID:         string(id),
		EffectiveStock: stock.String(),
		AsOf:           raw,
	})
}

// GetShortages returns the camp's day-by-day shortage report.
func (h *Handler) GetShortages(w http.ResponseWriter, r *http.Request) {
	id := engine.CampID(chi.URLParam(r, "id"))

	verdicts, err := h.Reports.ShortageReport(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to project shortages", err)
		return
	}
	writeJSON(w, http.StatusOK, toVerdictDTOs(verdicts))
}

// ListShortageAlerts returns every camp with at least one shortfall day.
func (h *Handler) ListShortageAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.Reports.ShortageAlerts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute alerts", err)
		return
	}

	dtos := make([]CampAlertDTO, len(alerts))
	for i, a := range alerts {
		dtos[i] = CampAlertDTO{
			CampID:    string(a.CampID),
			CampName:  a.CampName,
			Shortages: toVerdictDTOs(a.Shortages),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListCampSummaries returns the per-camp food overview.
func (h *Handler) ListCampSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.Reports.CampSummaries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute summaries", err)
		return
	}

	dtos := make([]CampSummaryDTO, len(summaries))
	for i, s := range summaries {
		dtos[i] = CampSummaryDTO{
			Camp:           toCampDTO(s.Camp),
			CamperCount:    s.CamperCount,
			RequiredDaily:  s.RequiredDaily.String(),
			EffectiveStock: s.EffectiveStock.String(),
			Gap:            s.Gap.String(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// LEADER HANDLERS
// =============================================================================

// CreateLeader creates a new leader.
func (h *Handler) CreateLeader(w http.ResponseWriter, r *http.Request) {
	var req CreateLeaderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id and name are required", nil)
		return
	}

	leader := engine.Leader{ID: engine.LeaderID(req.ID), Name: req.Name}
	if err := h.Store.InsertLeader(r.Context(), leader); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create leader", err)
		return
	}
	writeJSON(w, http.StatusCreated, LeaderDTO{ID: req.ID, Name: req.Name})
}

// GetLeader returns a single leader.
func (h *Handler) GetLeader(w http.ResponseWriter, r *http.Request) {
	id := engine.LeaderID(chi.URLParam(r, "id"))

	leader, err := h.Store.FetchLeader(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to get leader", err)
		return
	}
	writeJSON(w, http.StatusOK, LeaderDTO{ID: string(leader.ID), Name: leader.Name})
}

// ListAssignments returns the leader's held assignments.
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	id := engine.LeaderID(chi.URLParam(r, "id"))

	held, err := h.Assignments.Assignments(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to list assignments", err)
		return
	}

	dtos := make([]AssignmentDTO, len(held))
	for i, a := range held {
		dtos[i] = toAssignmentDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Claim assigns a camp to the leader for the camp's full range.
func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	id := engine.LeaderID(chi.URLParam(r, "id"))

	var req ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	a, err := h.Assignments.Claim(r.Context(), id, engine.CampID(req.CampID))
	if err != nil {
		writeDomainError(w, "Failed to claim camp", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssignmentDTO(*a))
}

// Unassign removes the leader's claim on a camp.
func (h *Handler) Unassign(w http.ResponseWriter, r *http.Request) {
	id := engine.LeaderID(chi.URLParam(r, "id"))
	campID := engine.CampID(chi.URLParam(r, "campID"))

	if err := h.Assignments.Unassign(r.Context(), id, campID); err != nil {
		writeDomainError(w, "Failed to unassign", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAvailableCamps returns camps the leader could still claim.
func (h *Handler) ListAvailableCamps(w http.ResponseWriter, r *http.Request) {
	id := engine.LeaderID(chi.URLParam(r, "id"))

	available, err := h.Assignments.AvailableCamps(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to list available camps", err)
		return
	}

	dtos := make([]CampDTO, len(available))
	for i, camp := range available {
		dtos[i] = toCampDTO(camp)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPay returns the leader's pay report.
func (h *Handler) GetPay(w http.ResponseWriter, r *http.Request) {
	id := engine.LeaderID(chi.URLParam(r, "id"))

	report, err := h.Reports.LeaderPay(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to compute pay", err)
		return
	}

	dto := PayReportDTO{
		LeaderID:  string(report.LeaderID),
		DailyRate: report.DailyRate.String(),
		Total:     report.Total.String(),
		PerCamp:   make([]PayLineDTO, len(report.PerCamp)),
	}
	for i, line := range report.PerCamp {
		dto.PerCamp[i] = PayLineDTO{
			CampID:   string(line.CampID),
			CampName: line.CampName,
			Days:     line.Days,
			Pay:      line.Pay.String(),
		}
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// GetPayRate returns the configured daily pay rate.
func (h *Handler) GetPayRate(w http.ResponseWriter, r *http.Request) {
	rate, err := h.Reports.DailyPayRate(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read pay rate", err)
		return
	}
	writeJSON(w, http.StatusOK, PayRateDTO{DailyRate: rate.String()})
}

// SetPayRate stores the daily pay rate.
func (h *Handler) SetPayRate(w http.ResponseWriter, r *http.Request) {
	var req PayRateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	rate, err := decimal.NewFromString(req.DailyRate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid daily_rate", err)
		return
	}

	if err := h.Reports.SetDailyPayRate(r.Context(), rate); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to set pay rate", err)
		return
	}
	writeJSON(w, http.StatusOK, PayRateDTO{DailyRate: rate.String()})
}

// =============================================================================
// HELPERS
// =============================================================================

func toCampDTO(camp engine.Camp) CampDTO {
	return CampDTO{
		ID:                   string(camp.ID),
		Name:                 camp.Name,
		Location:             camp.Location,
		Area:                 camp.Area,
		Type:                 string(camp.Type),
		StartDate:            camp.Range.Start.String(),
		EndDate:              camp.Range.End.String(),
		BaseFoodStock:        camp.BaseFoodStock.String(),
		DefaultFoodPerCamper: camp.DefaultFoodPerCamper.String(),
	}
}

func toCamperDTO(c engine.CamperRecord) CamperDTO {
	dto := CamperDTO{
		ID:               string(c.ID),
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		DateOfBirth:      c.DateOfBirth.String(),
		EmergencyContact: c.EmergencyContact,
	}
	if c.FoodUnits != nil {
		dto.FoodUnits = c.FoodUnits.String()
	}
	return dto
}

func toAssignmentDTO(a engine.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:        a.ID,
		LeaderID:  string(a.LeaderID),
		CampID:    string(a.CampID),
		StartDate: a.Range.Start.String(),
		EndDate:   a.Range.End.String(),
	}
}

func toVerdictDTOs(verdicts []engine.ShortageVerdict) []VerdictDTO {
	dtos := make([]VerdictDTO, len(verdicts))
	for i, v := range verdicts {
		dtos[i] = VerdictDTO{
			Date:      v.Date.String(),
			Required:  v.Required.String(),
			Planned:   v.Planned.String(),
			Shortfall: v.Shortfall.String(),
			Short:     v.IsShort(),
		}
	}
	return dtos
}

func parseDecimalOrZero(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine errors to HTTP statuses: missing references
// become 404, assignment conflicts 409, other client mistakes 400.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case engine.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, engine.ErrOverlapConflict), errors.Is(err, engine.ErrDuplicateAssignment):
		writeError(w, http.StatusConflict, message, err)
	case engine.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
