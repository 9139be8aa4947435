package rest

import (
	"net/http"

	"carrental-backend/internal/service"
)

type setupStatusResponse struct {
	Configured bool   `json:"configured"`
	AppURL     string `json:"appUrl,omitempty"`
	ServerPort int    `json:"serverPort,omitempty"`
	ClientPort int    `json:"clientPort,omitempty"`
	DBMode     string `json:"dbMode,omitempty"`
}

func (s *Server) handleSetupStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.setup.Status(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, setupStatusResponse{
		Configured: status.Configured,
		AppURL:     status.AppURL,
		ServerPort: status.ServerPort,
		ClientPort: status.ClientPort,
		DBMode:     status.DBMode,
	})
}

type setupRequest struct {
	AppURL        string `json:"appUrl"`
	ServerPort    int    `json:"serverPort"`
	ClientPort    int    `json:"clientPort"`
	DBMode        string `json:"dbMode"`
	DBHost        string `json:"dbHost"`
	DBPort        int    `json:"dbPort"`
	DBName        string `json:"dbName"`
	DBUser        string `json:"dbUser"`
	DBPassword    string `json:"dbPassword"`
	DBSSLMode     string `json:"dbSslMode"`
	AdminEmail    string `json:"adminEmail"`
	AdminPassword string `json:"adminPassword"`
	AdminName     string `json:"adminName"`
}

func (s *Server) handleSetupRun(w http.ResponseWriter, r *http.Request) {
	// Re-running setup is allowed; it refreshes the saved configuration and
	// the admin credentials.
	var req setupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AdminEmail == "" || req.AdminPassword == "" {
		writeError(w, http.StatusBadRequest, "Admin email and password are required")
		return
	}
	if req.DBMode == "" {
		req.DBMode = "local"
	}
	if req.DBMode != "local" && req.DBMode != "external" {
		writeError(w, http.StatusBadRequest, "Database mode must be local or external")
		return
	}

	err := s.setup.Run(r.Context(), &service.SetupInput{
		AppURL:        req.AppURL,
		ServerPort:    req.ServerPort,
		ClientPort:    req.ClientPort,
		DBMode:        req.DBMode,
		DBHost:        req.DBHost,
		DBPort:        req.DBPort,
		DBName:        req.DBName,
		DBUser:        req.DBUser,
		DBPassword:    req.DBPassword,
		DBSSLMode:     req.DBSSLMode,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
		AdminName:     req.AdminName,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Setup completed"})
}

type testDBRequest struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Name     string `json:"name"`
	User     string `json:"user"`
	Password string `json:"password"`
	SSLMode  string `json:"sslMode"`
}

func (s *Server) handleSetupTestDB(w http.ResponseWriter, r *http.Request) {
	var req testDBRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Host == "" || req.Name == "" || req.User == "" {
		writeError(w, http.StatusBadRequest, "Host, database name and user are required")
		return
	}
	if req.Port == 0 {
		req.Port = 5432
	}

	err := s.setup.TestDatabase(r.Context(), &service.TestDBInput{
		Host:     req.Host,
		Port:     req.Port,
		Name:     req.Name,
		User:     req.User,
		Password: req.Password,
		SSLMode:  req.SSLMode,
	})
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
