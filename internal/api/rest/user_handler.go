package rest

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"carrental-backend/internal/domain"

	"github.com/gorilla/mux"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	claims, _ := sessionFromContext(r.Context())
	user, err := s.users.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

type updateProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims, _ := sessionFromContext(r.Context())
	user, err := s.users.UpdateProfile(r.Context(), claims.UserID, req.Name, req.Phone, req.Address)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

var allowedDocumentExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".pdf":  {},
}

// saveDocument stores one multipart file field and returns its public URL,
// or nil when the field is absent.
func (s *Server) saveDocument(r *http.Request, field string) (*string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedDocumentExts[ext]; !ok {
		return nil, errUnsupportedDocument
	}

	url, err := s.documents.Save(header.Filename, file)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

var errUnsupportedDocument = errors.New("unsupported document type")

func (s *Server) handleUploadDocuments(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	idCardURL, err := s.saveDocument(r, "idCard")
	if err != nil {
		s.writeUploadError(w, err)
		return
	}
	licenseURL, err := s.saveDocument(r, "driverLicense")
	if err != nil {
		s.writeUploadError(w, err)
		return
	}
	if idCardURL == nil && licenseURL == nil {
		writeError(w, http.StatusBadRequest, "At least one document is required")
		return
	}

	claims, _ := sessionFromContext(r.Context())
	user, err := s.users.UploadDocuments(r.Context(), claims.UserID, idCardURL, licenseURL)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) writeUploadError(w http.ResponseWriter, err error) {
	if errors.Is(err, errUnsupportedDocument) {
		writeError(w, http.StatusBadRequest, "Only JPEG, PNG, WebP and PDF documents are accepted")
		return
	}
	if errors.Is(err, multipart.ErrMessageTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
		return
	}
	writeServiceError(w, err)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	users, total, err := s.users.ListUsers(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"users":      users,
		"pagination": newPagination(page, limit, total),
	})
}

func (s *Server) handlePendingVerification(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListPendingVerification(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if users == nil {
		users = []domain.User{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Email, password and name are required")
		return
	}

	user, err := s.users.CreateUser(r.Context(), req.Email, req.Name, req.Password, req.IsAdmin)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": user})
}

type updateUserRequest struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"isAdmin"`
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.users.UpdateUser(r.Context(), mux.Vars(r)["id"], req.Email, req.Name, req.Password, req.IsAdmin)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, _ := sessionFromContext(r.Context())
	if err := s.users.DeleteUser(r.Context(), mux.Vars(r)["id"], claims.UserID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

type setVerificationRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (s *Server) handleSetVerification(w http.ResponseWriter, r *http.Request) {
	var req setVerificationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.users.SetVerification(r.Context(), mux.Vars(r)["id"], domain.VerificationStatus(req.Status), req.Note)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleUserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.users.GetStats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}
