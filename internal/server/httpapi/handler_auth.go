package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/seventour/seventour/internal/common"
	"github.com/seventour/seventour/internal/server/services"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeNonFieldError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	fields := map[string][]string{}
	if req.Email == "" {
		fields["email"] = []string{"This field may not be blank."}
	}
	if req.Password == "" {
		fields["password"] = []string{"This field may not be blank."}
	}
	if len(fields) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, fields)
		return
	}

	user, pair, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeNonFieldError(w, http.StatusBadRequest, "Unable to log in with provided credentials.")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(user, pair))
}

func (s *Server) handleRegistration(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		Password2 string `json:"password2"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeNonFieldError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	fields := map[string][]string{}
	if req.Email == "" {
		fields["email"] = []string{"This field may not be blank."}
	}
	if req.Password == "" {
		fields["password"] = []string{"This field may not be blank."}
	}
	if len(fields) > 0 {
		writeFieldErrors(w, http.StatusBadRequest, fields)
		return
	}
	if req.Password != req.Password2 {
		writeNonFieldError(w, http.StatusBadRequest, "The two password fields didn't match.")
		return
	}

	user, pair, err := s.users.Register(r.Context(), services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeFieldErrors(w, http.StatusBadRequest, map[string][]string{
				"email": {"A user is already registered with this e-mail address."},
			})
			return
		}
		s.logger.Error(r.Context(), "registration failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	writeJSON(w, http.StatusCreated, toAuthResponse(user, pair))
}

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AccessToken == "" {
		writeNonFieldError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, pair, err := s.users.GoogleLogin(r.Context(), req.AccessToken)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeNonFieldError(w, http.StatusBadRequest, "Incorrect value")
			return
		}
		s.logger.Error(r.Context(), "google login failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(user, pair))
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	user, err := s.users.CurrentUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeDetail(w, http.StatusUnauthorized, "Invalid token.")
			return
		}
		s.logger.Error(r.Context(), "current user lookup failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	if err := s.users.Logout(r.Context(), userID); err != nil {
		s.logger.Error(r.Context(), "logout failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	writeDetail(w, http.StatusOK, "Successfully logged out.")
}

func (s *Server) handleTokenRefresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh == "" {
		writeFieldErrors(w, http.StatusBadRequest, map[string][]string{
			"refresh": {"This field may not be blank."},
		})
		return
	}

	pair, err := s.users.RefreshToken(r.Context(), req.Refresh)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrRefreshTokenExpired) {
			writeDetail(w, http.StatusUnauthorized, "Token is invalid or expired")
			return
		}
		s.logger.Error(r.Context(), "token refresh failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access":  pair.AccessToken,
		"refresh": pair.RefreshToken,
	})
}

func (s *Server) handleProfilePhoto(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return
	}

	uploadURL, photoURL, err := s.media.ProfilePhotoUpload(r.Context(), userID)
	if err != nil {
		s.logger.Error(r.Context(), "profile photo upload failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"upload_url": uploadURL,
		"photo_url":  photoURL,
	})
}
