package handlers

import (
	"net/http"

	"github.com/promptmandu/prompt-marketplace/internal/api/middleware"
	"github.com/promptmandu/prompt-marketplace/internal/models"
)

// claimsFromRequest pulls the authenticated user's claims placed into the
// context by the auth middleware.
func claimsFromRequest(r *http.Request) (*models.Claims, bool) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)

	return claims, ok
}
