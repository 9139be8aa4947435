package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.GetSettings(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": settings})
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := decodeJSON(r, &values); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(values) == 0 {
		writeError(w, http.StatusBadRequest, "No settings supplied")
		return
	}

	if err := s.settings.UpdateSettings(r.Context(), values); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Settings updated"})
}

func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.settings.GetSetting(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"setting": cfg})
}
