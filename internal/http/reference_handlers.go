package httpapi

import (
	"context"
	"net/http"

	"dwr-api/internal/models"
)

// listHandler serves an unfiltered reference list.
func (a *API) listHandler(endpoint string, list func(context.Context) ([]models.Reference, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refs, err := list(r.Context())
		if err != nil {
			a.fail(w, r, endpoint, err)
			return
		}
		writeJSON(w, http.StatusOK, refs)
	}
}

// handleEquipment serves GET /equipment?type=...
func (a *API) handleEquipment(w http.ResponseWriter, r *http.Request) {
	equipmentType := r.URL.Query().Get("type")
	if equipmentType == "" {
		writeError(w, http.StatusBadRequest, "Type required")
		return
	}

	equipment, err := a.refs.ListEquipment(r.Context(), equipmentType)
	if err != nil {
		a.fail(w, r, "equipment", err)
		return
	}
	writeJSON(w, http.StatusOK, equipment)
}

// handleProjectItems serves GET /project-items?project_id=...
func (a *API) handleProjectItems(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("project_id")
	if projectID == "" {
		writeError(w, http.StatusBadRequest, "Project ID required")
		return
	}

	items, err := a.refs.ListProjectItems(r.Context(), projectID)
	if err != nil {
		a.fail(w, r, "project-items", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}
