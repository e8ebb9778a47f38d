package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"openlater/internal/delivery/http/helpers"
	"openlater/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// CreateCapsuleRequest is the request body for POST /create.
type CreateCapsuleRequest struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	UnlockAt time.Time `json:"unlock_at"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateCapsuleRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.Email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegex.MatchString(strings.TrimSpace(c.Email)) {
		errs = append(errs, "email must be a valid email address")
	}
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Message) == "" {
		errs = append(errs, "message is required")
	}
	if c.UnlockAt.IsZero() {
		errs = append(errs, "unlock_at is required")
	}
	return errs
}

// CreateCapsuleSuccessResponse is the success response envelope for POST /create (201).
type CreateCapsuleSuccessResponse struct {
	Data  *domain.CapsuleCreated `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// ListCapsulesSuccessResponse is the success response envelope for GET /capsules (200).
type ListCapsulesSuccessResponse struct {
	Data  []*domain.CapsuleView `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// GetCapsuleSuccessResponse is the success response envelope for GET /capsule/{publicID} (200).
type GetCapsuleSuccessResponse struct {
	Data  *domain.CapsuleView `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type CapsuleController struct {
	Logger  *slog.Logger
	Service domain.CapsuleService
}

func NewCapsuleController(logger *slog.Logger, svc domain.CapsuleService) *CapsuleController {
	return &CapsuleController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateCapsule godoc
// @Summary Create a time capsule
// @Description Seals a message until unlock_at. name, email, title, and message are required; unlock_at is an ISO-8601 timestamp. Returns the capsule's public identifier.
// @Tags capsules
// @Accept json
// @Produce json
// @Param capsule body CreateCapsuleRequest true "Capsule data"
// @Success 201 {object} controllers.CreateCapsuleSuccessResponse "data contains public_id and unlock_at"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /create [post]
func (c *CapsuleController) CreateCapsule(w http.ResponseWriter, r *http.Request) {
	var req CreateCapsuleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	created, err := c.Service.Create(r.Context(), &domain.CreateCapsuleInput{
		Name:     req.Name,
		Email:    req.Email,
		Title:    req.Title,
		Message:  req.Message,
		UnlockAt: req.UnlockAt,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// ListCapsules godoc
// @Summary List all capsules
// @Description Returns every capsule, newest first. Messages of capsules that have not reached their unlock time are replaced with a placeholder.
// @Tags capsules
// @Produce json
// @Success 200 {object} controllers.ListCapsulesSuccessResponse "data is an array of capsules"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /capsules [get]
func (c *CapsuleController) ListCapsules(w http.ResponseWriter, r *http.Request) {
	views, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
		return
	}
	if views == nil {
		views = []*domain.CapsuleView{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, views)
}

// GetCapsule godoc
// @Summary Get a capsule by public identifier
// @Description Returns a single capsule. The message is withheld with the same rule as the list endpoint until the unlock time has passed.
// @Tags capsules
// @Produce json
// @Param publicID path string true "Capsule public identifier"
// @Success 200 {object} controllers.GetCapsuleSuccessResponse "data contains the capsule"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /capsule/{publicID} [get]
func (c *CapsuleController) GetCapsule(w http.ResponseWriter, r *http.Request) {
	publicID := r.PathValue("publicID")
	if publicID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing publicID")
		return
	}
	view, err := c.Service.Get(r.Context(), publicID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "capsule not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, view)
}
