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

// SignInRequest is the POST /v1/auth/signin payload. OTP is only
// consulted for accounts with MFA enabled.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	OTP      string `json:"otp,omitempty" validate:"omitempty,numeric,min=6,max=8"`
}

// SignInHandler handles POST /v1/auth/signin.
type SignInHandler struct {
	AccountService *service.AccountService
	Validate       *Validator
}

// ServeHTTP handles POST /v1/auth/signin
//
//	@Summary		Sign in with credentials
//	@Description	Verifies email and password (plus a TOTP code when MFA is enabled) and returns a signed access token.
//	@Description	All credential failures produce the same response so callers cannot probe for registered emails.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SignInRequest			true	"Credentials"
//	@Success		200		{object}	gatesdk.SignInResponse	"Access token"
//	@Failure		400		{object}	gatesdk.SignInResponse	"Validation failure or unable to sign in"
//	@Failure		500		{object}	gatesdk.SignInResponse	"Internal server error"
//	@Router			/v1/auth/signin [post].
func (h *SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.SignInResponse{
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

	token, err := h.AccountService.SignIn(ctx, req.Email, req.Password, req.OTP)
	if err != nil {
		// Unknown account, wrong password, and wrong OTP all collapse
		// into one uniform answer.
		if errors.Is(err, service.ErrUnknownAccount) ||
			errors.Is(err, service.ErrInvalidCredentials) ||
			errors.Is(err, service.ErrInvalidOTP) {
			log.Warn("sign-in rejected", "email", req.Email)
			httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.SignInResponse{
				Status:  gatesdk.StatusError,
				Message: "Unable to sign in",
			})
			return
		}
		log.Error("failed to sign in", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.SignInResponse{
			Status:  gatesdk.StatusError,
			Message: "Internal server error",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.SignInResponse{
		Status:  gatesdk.StatusSuccess,
		Message: "Signed in successfully",
		Token:   token,
	})
}
