package fakeapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/userdesk/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type updateRequest struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Avatar    *string `json:"avatar" validate:"omitempty,url"`
}

type updateResponse struct {
	models.User
	UpdatedAt string `json:"updatedAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing email or username")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, loginValidationMessage(err))
		return
	}
	if _, ok := s.store.FindByEmail(req.Email); !ok {
		writeError(w, http.StatusBadRequest, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: s.issueToken(req.Email)})
}

func loginValidationMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if fe.StructField() == "Email" {
				return "Missing email or username"
			}
		}
		return "Missing password"
	}
	return err.Error()
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage := s.perPage
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 {
		perPage = v
	}
	writeJSON(w, http.StatusOK, s.store.Page(page, perPage))
}

func userID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil && id > 0
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	u, ok := s.store.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Data models.User `json:"data"`
	}{Data: u})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn(r.Context(), "update rejected", "id", id, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	u, ok := s.store.Update(id, models.UserPatch{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Avatar:    req.Avatar,
	})
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, updateResponse{User: u, UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano)})
}

// handleDelete answers 204 whether or not the user existed.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(r)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if status := s.deleteFailure(id); status != 0 {
		writeError(w, status, "delete failed")
		return
	}
	if !s.store.Delete(id) {
		s.logger.Debug(r.Context(), "delete of unknown user", "id", id)
	}
	w.WriteHeader(http.StatusNoContent)
}
