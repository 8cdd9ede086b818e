package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gatehouseio/gatehouse/internal/gate/service"
	"github.com/gatehouseio/gatehouse/pkg/gatesdk"
	"github.com/gatehouseio/gatehouse/pkg/httpx"
	"github.com/gatehouseio/gatehouse/pkg/slogx"
)

// RegisterRequest is the POST /v1/auth/register payload.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// RegisterHandler handles POST /v1/auth/register.
type RegisterHandler struct {
	AccountService *service.AccountService
	Validate       *Validator
}

// ServeHTTP handles POST /v1/auth/register
//
//	@Summary		Register a new account
//	@Description	Creates an account from an email, username, and password. The email must be unused.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest			true	"Account details"
//	@Success		200		{object}	gatesdk.StatusResponse	"Account created"
//	@Failure		400		{object}	gatesdk.StatusResponse	"Validation failure or email already exists"
//	@Failure		500		{object}	gatesdk.StatusResponse	"Internal server error"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.StatusResponse{
			Status:  gatesdk.StatusError,
			Message: "Invalid JSON body",
		})
		return
	}

	if errs := h.Validate.Struct(req); errs != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.StatusResponse{
			Status:  gatesdk.StatusError,
			Message: "Validation failed",
			Errors:  errs,
		})
		return
	}

	_, err := h.AccountService.Register(ctx, req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			log.Warn("duplicate registration", "email", req.Email)
			httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.StatusResponse{
				Status:  gatesdk.StatusError,
				Message: "Email already exists",
			})
			return
		}
		log.Error("failed to register account", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.StatusResponse{
			Status:  gatesdk.StatusError,
			Message: "Internal server error",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.StatusResponse{
		Status:  gatesdk.StatusSuccess,
		Message: "Account created successfully",
	})
}
