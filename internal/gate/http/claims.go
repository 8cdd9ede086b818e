package http

import (
	"net/http"
	"strconv"

	"github.com/gatehouseio/gatehouse/internal/gate/domain"
	"github.com/gatehouseio/gatehouse/pkg/gatesdk"
	"github.com/gatehouseio/gatehouse/pkg/httpx"
	"github.com/gatehouseio/gatehouse/pkg/jwtx"
)

// ClaimsHandler handles GET /v1/auth/claims.
//
// The handler never inspects the Authorization header itself: the claims
// it serves come exclusively from the request context populated by the
// validating bearer middleware.
type ClaimsHandler struct{}

// ServeHTTP handles GET /v1/auth/claims
//
//	@Summary		List token claims
//	@Description	Returns the claims extracted from the presented access token, in a stable order.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		domain.Claim			"Ordered claim list"
//	@Failure		401	{object}	gatesdk.StatusResponse	"Invalid or missing access token"
//	@Router			/v1/auth/claims [get].
func (h *ClaimsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, gatesdk.StatusResponse{
			Status:  gatesdk.StatusError,
			Message: "Invalid or missing access token",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, claimList(claims))
}

// claimList flattens validated claims into a deterministic order:
// the custom UserId claim first, then the registered claims.
func claimList(claims jwtx.Claims) []domain.Claim {
	out := make([]domain.Claim, 0, 8)

	appendClaim := func(typ, value string) {
		if value != "" {
			out = append(out, domain.Claim{Type: typ, Value: value})
		}
	}

	appendClaim(jwtx.ClaimUserID, claims.UserID)
	appendClaim("sub", claims.Subject)
	appendClaim("jti", claims.ID)
	appendClaim("iss", claims.Issuer)
	for _, aud := range claims.Audience {
		appendClaim("aud", aud)
	}
	if claims.IssuedAt != nil {
		appendClaim("iat", strconv.FormatInt(claims.IssuedAt.Unix(), 10))
	}
	if claims.NotBefore != nil {
		appendClaim("nbf", strconv.FormatInt(claims.NotBefore.Unix(), 10))
	}
	if claims.ExpiresAt != nil {
		appendClaim("exp", strconv.FormatInt(claims.ExpiresAt.Unix(), 10))
	}

	return out
}
