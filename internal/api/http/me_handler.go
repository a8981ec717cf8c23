package http

import (
	"net/http"

	authmw "github.com/mind-engage/ecoquiz/internal/auth/middleware"
	"github.com/mind-engage/ecoquiz/internal/rbac"
)

// GET /me  who the caller is and what the role may do.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := rbac.RoleFromContext(r.Context())
		writeJSON(w, http.StatusOK, map[string]any{
			"sub":         authmw.SubjectFromContext(r.Context()),
			"role":        role,
			"permissions": rbac.Permissions(role),
		})
	}
}
