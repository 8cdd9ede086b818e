package http

import (
	"errors"
	"net/http"

	"github.com/gatehouseio/gatehouse/internal/gate/service"
	"github.com/gatehouseio/gatehouse/internal/gate/store"
	"github.com/gatehouseio/gatehouse/pkg/gatesdk"
	"github.com/gatehouseio/gatehouse/pkg/httpx"
	"github.com/gatehouseio/gatehouse/pkg/slogx"
)

// ProfileHandler handles GET /v1/profile.
type ProfileHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP handles GET /v1/profile
//
//	@Summary		Get own profile
//	@Description	Returns the authenticated subject's user record.
//	@Tags			Profile
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	gatesdk.ProfileResponse	"User record"
//	@Failure		401	{object}	gatesdk.StatusResponse	"Invalid or missing access token"
//	@Failure		500	{object}	gatesdk.StatusResponse	"Internal server error"
//	@Router			/v1/profile [get].
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	user, err := h.AccountService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Token was valid but the subject no longer exists.
			log.Warn("token subject not found", "user_id", userID)
			httpx.WriteJSON(w, http.StatusUnauthorized, gatesdk.StatusResponse{
				Status:  gatesdk.StatusError,
				Message: "Invalid or missing access token",
			})
			return
		}
		log.Error("failed to load user", "user_id", userID, "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, gatesdk.StatusResponse{
			Status:  gatesdk.StatusError,
			Message: "Internal server error",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, gatesdk.ProfileResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
}
