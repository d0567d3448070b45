/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Camps:       CampDTO, CreateCampRequest, CampSummaryDTO
  Campers:     CamperDTO, ImportSummaryDTO, RejectedRowDTO
  Stock:       TopUpDTO, CreateTopUpRequest, StockDTO
  Shortages:   VerdictDTO, CampAlertDTO
  Leaders:     LeaderDTO, CreateLeaderRequest, AssignmentDTO, ClaimRequest
  Pay:         PayReportDTO, PayLineDTO, PayRateDTO

MONEY AND FOOD:
  Decimal quantities cross the wire as strings so clients never see float
  rounding artifacts.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import "github.com/warp/camptrack/engine"

// =============================================================================
// CAMPS
// =============================================================================

// CampDTO represents a camp in API responses.
type CampDTO struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Location             string `json:"location,omitempty"`
	Area                 string `json:"area,omitempty"`
	Type                 string `json:"type"`
	StartDate            string `json:"start_date"`
	EndDate              string `json:"end_date"`
	BaseFoodStock        string `json:"base_food_stock"`
	DefaultFoodPerCamper string `json:"default_food_per_camper"`
}

// CreateCampRequest is the request to create a camp.
type CreateCampRequest struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Location             string `json:"location"`
	Area                 string `json:"area"`
	Type                 string `json:"type"`
	StartDate            string `json:"start_date"`
	EndDate              string `json:"end_date"`
	BaseFoodStock        string `json:"base_food_stock"`
	DefaultFoodPerCamper string `json:"default_food_per_camper"`
}

// CampSummaryDTO is the coordinator's one-line camp overview.
type CampSummaryDTO struct {
	Camp           CampDTO `json:"camp"`
	CamperCount    int     `json:"camper_count"`
	RequiredDaily  string  `json:"required_daily"`
	EffectiveStock string  `json:"effective_stock"`
	Gap            string  `json:"gap"`
}

// =============================================================================
// CAMPERS / IMPORT
// =============================================================================

// CamperDTO represents a camper linked to a camp.
type CamperDTO struct {
	ID               string `json:"id"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	DateOfBirth      string `json:"date_of_birth"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
	FoodUnits        string `json:"food_units,omitempty"`
}

// RejectedRowDTO is one malformed roster row with its reason.
type RejectedRowDTO struct {
	Row    engine.RawRow `json:"row"`
	Reason string        `json:"reason"`
}

// ImportSummaryDTO reports the outcome of a roster import.
type ImportSummaryDTO struct {
	Created    int              `json:"created"`
	Linked     int              `json:"linked"`
	Duplicates []engine.RawRow  `json:"duplicates"`
	Malformed  []RejectedRowDTO `json:"malformed"`
}

// =============================================================================
// STOCK
// =============================================================================

// TopUpDTO represents one entry in a camp's stock ledger.
type TopUpDTO struct {
	ID         string `json:"id"`
	CampID     string `json:"camp_id"`
	Delta      string `json:"delta"`
	RecordedAt string `json:"recorded_at"`
}

// CreateTopUpRequest is the request to append a stock top-up.
// RecordedAt is optional; it defaults to now.
type CreateTopUpRequest struct {
	Delta      string `json:"delta"`
	RecordedAt string `json:"recorded_at"`
}

// StockDTO is a camp's effective stock, optionally as of a point in time.
type StockDTO struct {
	CampID         string `json:"camp_id"`
	EffectiveStock string `json:"effective_stock"`
	AsOf           string `json:"as_of,omitempty"`
}

// =============================================================================
// SHORTAGES
// =============================================================================

// VerdictDTO is one day's required-vs-planned food comparison.
type VerdictDTO struct {
	Date      string `json:"date"`
	Required  string `json:"required"`
	Planned   string `json:"planned"`
	Shortfall string `json:"shortfall"`
	Short     bool   `json:"short"`
}

// CampAlertDTO flags a camp with at least one shortfall day.
type CampAlertDTO struct {
	CampID    string       `json:"camp_id"`
	CampName  string       `json:"camp_name"`
	Shortages []VerdictDTO `json:"shortages"`
}

// =============================================================================
// LEADERS / ASSIGNMENTS / PAY
// =============================================================================

// LeaderDTO represents a leader in API responses.
type LeaderDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateLeaderRequest is the request to create a leader.
type CreateLeaderRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AssignmentDTO represents a leader's claim on a camp.
type AssignmentDTO struct {
	ID        string `json:"id"`
	LeaderID  string `json:"leader_id"`
	CampID    string `json:"camp_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ClaimRequest is the request to claim a camp for a leader.
type ClaimRequest struct {
	CampID string `json:"camp_id"`
}

// PayLineDTO is one assignment's pay line.
type PayLineDTO struct {
	CampID   string `json:"camp_id"`
	CampName string `json:"camp_name"`
	Days     int    `json:"days"`
	Pay      string `json:"pay"`
}

// PayReportDTO is a leader's pay across all held assignments.
type PayReportDTO struct {
	LeaderID  string       `json:"leader_id"`
	DailyRate string       `json:"daily_rate"`
	Total     string       `json:"total"`
	PerCamp   []PayLineDTO `json:"per_camp"`
}

// PayRateDTO carries the configured daily pay rate.
type PayRateDTO struct {
	DailyRate string `json:"daily_rate"`
}

// ErrorResponse is the JSON shape of every error reply.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
