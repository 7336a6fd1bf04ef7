// Package http provides HTTP handlers for issuing and resolving secure id tokens.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	"github.com/allisson/secureid/internal/httputil"
	secureIDDomain "github.com/allisson/secureid/internal/secureid/domain"
	"github.com/allisson/secureid/internal/secureid/http/dto"
	secureIDUseCase "github.com/allisson/secureid/internal/secureid/usecase"
	customValidation "github.com/allisson/secureid/internal/validation"
)

// SecureIDHandler handles HTTP requests for secure id tokens.
type SecureIDHandler struct {
	secureIDUseCase secureIDUseCase.SecureIDUseCase
	defaultTTL      time.Duration
	logger          *slog.Logger
}

// NewSecureIDHandler creates a new secure id handler. A zero defaultTTL issues non-expiring
// tokens when the request carries no expiration.
func NewSecureIDHandler(
	secureIDUseCase secureIDUseCase.SecureIDUseCase,
	defaultTTL time.Duration,
	logger *slog.Logger,
) *SecureIDHandler {
	return &SecureIDHandler{
		secureIDUseCase: secureIDUseCase,
		defaultTTL:      defaultTTL,
		logger:          logger,
	}
}

// GenerateHandler issues a token for a record of the model named in the URL.
// POST /v1/secure-ids/:model/tokens
// Returns 201 Created with the token. A missing primary key is reported as 500.
func (h *SecureIDHandler) GenerateHandler(c *gin.Context) {
	var req dto.GenerateTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	model := c.Param("model")
	if err := validateModel(model); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	expiresAt := h.expiresAt(&req)

	token, err := h.secureIDUseCase.Generate(c.Request.Context(), model, req.ID, req.Scope, expiresAt)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.GenerateTokenResponse{
		Token:     token,
		Model:     model,
		ExpiresAt: expiresAt,
	})
}

// ResolveHandler resolves a token for the model named in the URL.
// POST /v1/secure-ids/:model/resolve
// Returns 200 OK with the identifier, or the same 404 for every unresolvable token.
func (h *SecureIDHandler) ResolveHandler(c *gin.Context) {
	var req dto.ResolveTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	model := c.Param("model")
	if err := validateModel(model); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	token, ok := req.TokenString()
	if !ok {
		httputil.HandleErrorGin(c, secureIDDomain.ErrSecureIDNotFound, h.logger)
		return
	}

	id, ok := h.secureIDUseCase.Resolve(c.Request.Context(), token, model, req.Scope)
	if !ok {
		httputil.HandleErrorGin(c, secureIDDomain.ErrSecureIDNotFound, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ResolveTokenResponse{
		ID:    id,
		Model: model,
	})
}

// expiresAt picks the request expiration, then the request TTL, then the default TTL.
func (h *SecureIDHandler) expiresAt(req *dto.GenerateTokenRequest) *time.Time {
	switch {
	case req.ExpiresAt != nil:
		t := req.ExpiresAt.UTC()
		return &t
	case req.TTL != nil:
		t := time.Now().UTC().Add(time.Duration(*req.TTL) * time.Second)
		return &t
	case h.defaultTTL > 0:
		t := time.Now().UTC().Add(h.defaultTTL)
		return &t
	default:
		return nil
	}
}

func validateModel(model string) error {
	return validation.Errors{
		"model": validation.Validate(model, validation.Required, customValidation.ModelName, validation.Length(1, 255)),
	}.Filter()
}
