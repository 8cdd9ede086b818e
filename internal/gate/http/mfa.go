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

// ActivateMFARequest is the POST /v1/mfa/activate payload.
type ActivateMFARequest struct {
	OTP string `json:"otp" validate:"required,numeric,min=6,max=8"`
}

// MFAHandler handles TOTP enrollment endpoints.
type MFAHandler struct {
	MFAService *service.MFAService
	Validate   *Validator
}

// HandleEnroll handles POST /v1/mfa/enroll
//
//	@Summary		Enroll in TOTP MFA
//	@Description	Generates a TOTP secret for the authenticated user and returns it with an otpauth:// provisioning URL.
//	@Description	Sign-in is unaffected until the enrollment is activated with a matching code.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	gatesdk.EnrollMFAResponse	"TOTP secret and provisioning URL"
//	@Failure		400	{object}	gatesdk.StatusResponse		"MFA already enabled"
//	@Failure		401	{object}	gatesdk.StatusResponse		"Invalid or missing access token"
//	@Failure		500	{object}	gatesdk.StatusResponse		"Internal server error"
//	@Router			/v1/mfa/enroll [post].
func (h *MFAHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, gatesdk.StatusResponse{
			Status:  gatesdk.StatusError,
			Message: "Invalid or missing access token",
		})
		return
	}

	enrollment, err := h.MFAService.Enroll(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrMFAAlreadyEnabled) {
			log.Warn("mfa already enabled", "user_id", userID)
			httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.StatusResponse{
				Status:  gatesdk.StatusError,
				Message: "MFA is already enabled",
			})
			return
		}
		log.Error("failed to enroll mfa", "user_id", userID, "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.StatusResponse{
			Status:  gatesdk.StatusError,
			Message: "Internal server error",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.EnrollMFAResponse{
		Status:  gatesdk.StatusSuccess,
		Message: "Scan the provisioning URL and activate with a code",
		Secret:  enrollment.Secret,
		URL:     enrollment.URL,
	})
}

// HandleActivate handles POST /v1/mfa/activate
//
//	@Summary		Activate TOTP MFA
//	@Description	Confirms enrollment with a code from the authenticator and turns the second factor on.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ActivateMFARequest		true	"TOTP code"
//	@Success		200		{object}	gatesdk.StatusResponse	"MFA enabled"
//	@Failure		400		{object}	gatesdk.StatusResponse	"Invalid code or enrollment state"
//	@Failure		401		{object}	gatesdk.StatusResponse	"Invalid or missing access token"
//	@Failure		500		{object}	gatesdk.StatusResponse	"Internal server error"
//	@Router			/v1/mfa/activate [post].
func (h *MFAHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, gatesdk.StatusResponse{
			Status:  gatesdk.StatusError,
			Message: "Invalid or missing access token",
		})
		return
	}

	var req ActivateMFARequest
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

	if err := h.MFAService.Activate(ctx, userID, req.OTP); err != nil {
		switch {
		case errors.Is(err, service.ErrMFAAlreadyEnabled):
			log.Warn("mfa already enabled", "user_id", userID)
			httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.StatusResponse{
				Status:  gatesdk.StatusError,
				Message: "MFA is already enabled",
			})
		case errors.Is(err, service.ErrMFANotEnrolled):
			log.Warn("mfa not enrolled", "user_id", userID)
			httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.StatusResponse{
				Status:  gatesdk.StatusError,
				Message: "No pending MFA enrollment",
			})
		case errors.Is(err, service.ErrMFABadCode):
			log.Warn("mfa activation code rejected", "user_id", userID)
			httpx.WriteJSON(w, http.StatusBadRequest, gatesdk.StatusResponse{
				Status:  gatesdk.StatusError,
				Message: "Invalid one-time code",
			})
		default:
			log.Error("failed to activate mfa", "user_id", userID, "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.StatusResponse{
				Status:  gatesdk.StatusError,
				Message: "Internal server error",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.StatusResponse{
		Status:  gatesdk.StatusSuccess,
		Message: "MFA enabled successfully",
	})
}
