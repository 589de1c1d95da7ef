package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/formava/formava-lms/internal/content"
	"github.com/formava/formava-lms/internal/evaluation"
)

// Authoring surface: upserts for the program tree and per-chapter exercise
// documents. Authors only; RBAC is enforced by the router.

func PutProgramHandler(cat *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p content.Program
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if p.ID == "" || p.Title == "" {
			http.Error(w, "id and title required", 400)
			return
		}
		if err := cat.PutProgram(r.Context(), p); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, p)
	}
}

func PutModuleHandler(cat *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m content.Module
		if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if m.ID == "" || m.ProgramID == "" {
			http.Error(w, "id and program_id required", 400)
			return
		}
		if err := cat.PutModule(r.Context(), m); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, m)
	}
}

func PutChapterHandler(cat *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var c content.Chapter
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if c.ID == "" || c.ModuleID == "" {
			http.Error(w, "id and module_id required", 400)
			return
		}
		if err := cat.PutChapter(r.Context(), c); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, c)
	}
}

// PUT /chapters/{chapterID}/exercises  {"blocks":[...]}
func PutExercisesHandler(src *content.SQLSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chapterID := chi.URLParam(r, "chapterID")
		var req struct {
			Blocks []evaluation.Block `json:"blocks"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		for _, b := range req.Blocks {
			if b.ID == "" {
				http.Error(w, "every block needs an id", 400)
				return
			}
		}
		if err := src.PutExerciseSet(r.Context(), chapterID, req.Blocks); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]int{"blocks": len(req.Blocks)})
	}
}

func ListProgramsHandler(cat *content.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := cat.ListPrograms(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, list)
	}
}
