package rest

import (
	"net/http"

	"carrental-backend/internal/metrics"
	"carrental-backend/internal/security"
	"carrental-backend/internal/service"
	"carrental-backend/internal/storage"

	"github.com/gorilla/mux"
)

// Server bundles the services behind the REST API.
type Server struct {
	tokens     security.TokenManager
	auth       service.AuthService
	cars       service.CarService
	bookings   service.BookingService
	users      service.UserService
	settings   service.SettingsService
	setup      service.SetupService
	documents  storage.DocumentStorage
	production bool

	maxUploadBytes int64
}

type ServerOptions struct {
	Tokens         security.TokenManager
	Auth           service.AuthService
	Cars           service.CarService
	Bookings       service.BookingService
	Users          service.UserService
	Settings       service.SettingsService
	Setup          service.SetupService
	Documents      storage.DocumentStorage
	Production     bool
	MaxUploadBytes int64
}

func NewServer(opts ServerOptions) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 5 << 20
	}
	return &Server{
		tokens:         opts.Tokens,
		auth:           opts.Auth,
		cars:           opts.Cars,
		bookings:       opts.Bookings,
		users:          opts.Users,
		settings:       opts.Settings,
		setup:          opts.Setup,
		documents:      opts.Documents,
		production:     opts.Production,
		maxUploadBytes: opts.MaxUploadBytes,
	}
}

// Router builds the full route table. Setup, health, metrics, car browsing
// and document downloads stay reachable before setup completes; everything
// else sits behind the setup guard.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(metrics.Middleware)

	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	// First-run setup wizard.
	r.HandleFunc("/api/setup", s.handleSetupStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/setup", s.handleSetupRun).Methods(http.MethodPost)
	r.HandleFunc("/api/setup/test-db", s.handleSetupTestDB).Methods(http.MethodPost)

	// Public car catalog.
	r.HandleFunc("/api/cars", s.handleListCars).Methods(http.MethodGet)
	r.HandleFunc("/api/cars/{id}", s.handleGetCar).Methods(http.MethodGet)
	r.HandleFunc("/api/cars", s.adminRequired(s.handleCreateCar)).Methods(http.MethodPost)
	r.HandleFunc("/api/cars/{id}", s.adminRequired(s.handleUpdateCar)).Methods(http.MethodPut)
	r.HandleFunc("/api/cars/{id}", s.adminRequired(s.handleDeleteCar)).Methods(http.MethodDelete)

	// Uploaded verification documents.
	if ls, ok := s.documents.(*storage.LocalStorage); ok {
		r.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(ls.Dir()))))
	}

	guarded := r.PathPrefix("/api").Subrouter()
	guarded.Use(s.setupGuard)

	guarded.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	guarded.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	guarded.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	guarded.HandleFunc("/auth/me", s.authRequired(s.handleCurrentUser)).Methods(http.MethodGet)

	guarded.HandleFunc("/bookings", s.authRequired(s.handleCreateBooking)).Methods(http.MethodPost)
	guarded.HandleFunc("/bookings", s.adminRequired(s.handleListBookings)).Methods(http.MethodGet)
	guarded.HandleFunc("/bookings/my", s.authRequired(s.handleMyBookings)).Methods(http.MethodGet)
	guarded.HandleFunc("/bookings/stats", s.adminRequired(s.handleBookingStats)).Methods(http.MethodGet)
	guarded.HandleFunc("/bookings/{id}", s.authRequired(s.handleGetBooking)).Methods(http.MethodGet)
	guarded.HandleFunc("/bookings/{id}/status", s.adminRequired(s.handleUpdateBookingStatus)).Methods(http.MethodPatch)
	guarded.HandleFunc("/bookings/{id}/charges", s.adminRequired(s.handleUpdateBookingCharges)).Methods(http.MethodPatch)
	guarded.HandleFunc("/bookings/{id}/payment", s.adminRequired(s.handleUpdateBookingPayment)).Methods(http.MethodPatch)
	guarded.HandleFunc("/bookings/{id}", s.adminRequired(s.handleDeleteBooking)).Methods(http.MethodDelete)

	guarded.HandleFunc("/users/profile/me", s.authRequired(s.handleGetProfile)).Methods(http.MethodGet)
	guarded.HandleFunc("/users/profile/me", s.authRequired(s.handleUpdateProfile)).Methods(http.MethodPut)
	guarded.HandleFunc("/users/profile/documents", s.authRequired(s.handleUploadDocuments)).Methods(http.MethodPost)
	guarded.HandleFunc("/users/stats", s.adminRequired(s.handleUserStats)).Methods(http.MethodGet)
	guarded.HandleFunc("/users/pending-verification", s.adminRequired(s.handlePendingVerification)).Methods(http.MethodGet)
	guarded.HandleFunc("/users", s.adminRequired(s.handleListUsers)).Methods(http.MethodGet)
	guarded.HandleFunc("/users", s.adminRequired(s.handleCreateUser)).Methods(http.MethodPost)
	guarded.HandleFunc("/users/{id}", s.adminRequired(s.handleGetUser)).Methods(http.MethodGet)
	guarded.HandleFunc("/users/{id}", s.adminRequired(s.handleUpdateUser)).Methods(http.MethodPut)
	guarded.HandleFunc("/users/{id}", s.adminRequired(s.handleDeleteUser)).Methods(http.MethodDelete)
	guarded.HandleFunc("/users/{id}/verification", s.adminRequired(s.handleSetVerification)).Methods(http.MethodPatch)

	guarded.HandleFunc("/settings", s.adminRequired(s.handleGetSettings)).Methods(http.MethodGet)
	guarded.HandleFunc("/settings", s.adminRequired(s.handleUpdateSettings)).Methods(http.MethodPut)
	guarded.HandleFunc("/settings/{key}", s.adminRequired(s.handleGetSetting)).Methods(http.MethodGet)

	return r
}
