package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/formava/formava-lms/internal/rbac"
	"github.com/formava/formava-lms/internal/result"
)

// GET /results?program_id=...&module_id=...&chapter_id=...&scope=...&user_id=...&limit=50&offset=0
// Roles without result:view-all only ever see their own rows: user_id is
// forced to the subject.
func ListResultsHandler(store result.Store) http.HandlerFunc {
	checker := rbac.NewChecker(nil)
	return func(w http.ResponseWriter, r *http.Request) {
		role := rbac.RoleFromContext(r.Context())
		sub := rbac.SubjectFromContext(r.Context())

		q := r.URL.Query()
		opts := result.ListOpts{
			UserID:    strings.TrimSpace(q.Get("user_id")),
			ProgramID: strings.TrimSpace(q.Get("program_id")),
			ModuleID:  strings.TrimSpace(q.Get("module_id")),
			ChapterID: strings.TrimSpace(q.Get("chapter_id")),
			Scope:     strings.TrimSpace(q.Get("scope")),
			Limit:     parseIntDefault(q.Get("limit"), 50),
			Offset:    parseIntDefault(q.Get("offset"), 0),
		}
		if !checker.Has(role, "result:view-all") {
			opts.UserID = sub
		}
		list, err := store.List(r.Context(), opts)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, list)
	}
}

// GET /results/{resultID}
func GetResultHandler(store result.Store) http.HandlerFunc {
	checker := rbac.NewChecker(nil)
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "resultID")
		res, err := store.Get(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), 404)
			return
		}
		role := rbac.RoleFromContext(r.Context())
		sub := rbac.SubjectFromContext(r.Context())
		if res.UserID != sub && !checker.Has(role, "result:view-all") {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, res)
	}
}
