package rest

import (
	"net/http"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/metrics"
	"carrental-backend/internal/service"

	"github.com/gorilla/mux"
)

type createBookingRequest struct {
	CarID         string `json:"carId"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	WithDriver    bool   `json:"withDriver"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	CustomerPhone string `json:"customerPhone"`
	Notes         string `json:"notes"`
}

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CarID == "" || req.StartDate == "" || req.EndDate == "" ||
		req.CustomerName == "" || req.CustomerEmail == "" {
		writeError(w, http.StatusBadRequest, "Car, dates and customer contact are required")
		return
	}

	claims, _ := sessionFromContext(r.Context())
	booking, err := s.bookings.CreateBooking(r.Context(), claims.UserID, &service.CreateBookingInput{
		CarID:         req.CarID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		WithDriver:    req.WithDriver,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	metrics.BookingsCreated.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{"booking": booking})
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	bookings, total, err := s.bookings.ListBookings(r.Context(), status, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"bookings":   bookings,
		"pagination": newPagination(page, limit, total),
	})
}

func (s *Server) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	claims, _ := sessionFromContext(r.Context())
	bookings, err := s.bookings.ListMyBookings(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	claims, _ := sessionFromContext(r.Context())
	booking, err := s.bookings.GetBooking(r.Context(), mux.Vars(r)["id"], claims.UserID, claims.IsAdmin)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (s *Server) handleUpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "Status is required")
		return
	}

	booking, err := s.bookings.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status, req.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}

type updateChargesRequest struct {
	CleaningFee *float64 `json:"cleaningFee"`
	DamageFee   *float64 `json:"damageFee"`
	OvertimeFee *float64 `json:"overtimeFee"`
	FuelFee     *float64 `json:"fuelFee"`
	OtherFees   *float64 `json:"otherFees"`
	FeesNotes   *string  `json:"feesNotes"`
}

func (s *Server) handleUpdateBookingCharges(w http.ResponseWriter, r *http.Request) {
	var req updateChargesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	booking, err := s.bookings.UpdateCharges(r.Context(), mux.Vars(r)["id"], &service.ChargesInput{
		CleaningFee: req.CleaningFee,
		DamageFee:   req.DamageFee,
		OvertimeFee: req.OvertimeFee,
		FuelFee:     req.FuelFee,
		OtherFees:   req.OtherFees,
		FeesNotes:   req.FeesNotes,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}

type updatePaymentRequest struct {
	PaidAmount   *float64 `json:"paidAmount"`
	PaymentNotes string   `json:"paymentNotes"`
}

func (s *Server) handleUpdateBookingPayment(w http.ResponseWriter, r *http.Request) {
	var req updatePaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PaidAmount == nil || *req.PaidAmount < 0 {
		writeError(w, http.StatusBadRequest, "A non-negative paid amount is required")
		return
	}

	booking, err := s.bookings.UpdatePayment(r.Context(), mux.Vars(r)["id"], *req.PaidAmount, req.PaymentNotes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"booking": booking})
}

func (s *Server) handleDeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := s.bookings.DeleteBooking(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking deleted"})
}

func (s *Server) handleBookingStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.bookings.GetStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}
