// Package httpapi exposes the REST API: the authentication endpoints under
// /api/v1/auth/ and the tour catalog under /api/v1/tours/.
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/seventour/seventour/internal/logging"
	"github.com/seventour/seventour/internal/server/models"
	"github.com/seventour/seventour/internal/server/services"
)

// UserService is the authentication surface the handlers need. Implemented
// by services.UserService.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	GoogleLogin(ctx context.Context, idToken string) (*models.User, *services.TokenPair, error)
	CurrentUser(ctx context.Context, userID int64) (*models.User, error)
	Logout(ctx context.Context, userID int64) error
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

// TourService is the catalog surface the handlers need. Implemented by
// services.TourService.
type TourService interface {
	ListPackages(ctx context.Context, f models.PackageFilter) ([]*models.TourPackage, int64, error)
	GetPackage(ctx context.Context, id int64) (*models.TourPackage, error)
	ListCountries(ctx context.Context, search string, page, pageSize int) ([]models.Country, int64, error)
	ListDestinations(ctx context.Context, countryID int64, page, pageSize int) ([]models.Destination, int64, error)
}

// MediaService hands out presigned profile photo uploads. Implemented by
// services.MediaService.
type MediaService interface {
	ProfilePhotoUpload(ctx context.Context, userID int64) (uploadURL, photoURL string, err error)
}

// Server is the SevenTour REST API server.
type Server struct {
	router chi.Router
	logger logging.Logger
	users  UserService
	tours  TourService
	media  MediaService
	secret []byte
}

// New creates a Server with all routes registered.
func New(users UserService, tours TourService, media MediaService, secret []byte, logger logging.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		logger: logger.With("module", "httpapi"),
		users:  users,
		tours:  tours,
		media:  media,
		secret: secret,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health/", s.handleHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login/", s.handleLogin)
			r.Post("/registration/", s.handleRegistration)
			r.Post("/google/", s.handleGoogleLogin)
			r.Post("/token/refresh/", s.handleTokenRefresh)

			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Get("/user/", s.handleCurrentUser)
				r.Post("/logout/", s.handleLogout)
				r.Post("/user/photo/", s.handleProfilePhoto)
			})
		})

		r.Route("/tours", func(r chi.Router) {
			r.Get("/packages/", s.handleListPackages)
			r.Get("/packages/{id}/", s.handleGetPackage)
			r.Get("/countries/", s.handleListCountries)
			r.Get("/destinations/", s.handleListDestinations)
		})
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
