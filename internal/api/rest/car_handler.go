package rest

import (
	"net/http"
	"strconv"

	"carrental-backend/internal/domain"

	"github.com/gorilla/mux"
)

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func (s *Server) handleListCars(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sortBy := q.Get("sortBy")
	if sortBy != "" && !domain.ValidCarSort(sortBy) {
		writeError(w, http.StatusBadRequest, "Invalid sort order")
		return
	}

	filter := domain.CarFilter{
		Search: q.Get("search"),
		Type:   q.Get("type"),
		SortBy: domain.CarSort(sortBy),
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 12),
	}

	cars, total, err := s.cars.ListCars(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if cars == nil {
		cars = []domain.Car{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cars":       cars,
		"pagination": newPagination(filter.Page, filter.Limit, total),
	})
}

func (s *Server) handleGetCar(w http.ResponseWriter, r *http.Request) {
	car, err := s.cars.GetCar(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"car": car})
}

func (s *Server) handleCreateCar(w http.ResponseWriter, r *http.Request) {
	var car domain.Car
	if err := decodeJSON(r, &car); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if car.Name == "" || car.Brand == "" || car.DailyPrice <= 0 {
		writeError(w, http.StatusBadRequest, "Name, brand and a positive daily price are required")
		return
	}

	if err := s.cars.CreateCar(r.Context(), &car); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"car": car})
}

func (s *Server) handleUpdateCar(w http.ResponseWriter, r *http.Request) {
	var car domain.Car
	if err := decodeJSON(r, &car); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	car.ID = mux.Vars(r)["id"]

	if err := s.cars.UpdateCar(r.Context(), &car); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"car": car})
}

func (s *Server) handleDeleteCar(w http.ResponseWriter, r *http.Request) {
	if err := s.cars.DeleteCar(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Car deleted"})
}
