package httpserver

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"collegeconnect/internal/config"
	"collegeconnect/internal/domain"
	"collegeconnect/internal/security"
	"collegeconnect/internal/service"

	_ "collegeconnect/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter constructs the main HTTP router and wires routes, services, and
// middleware. Repositories are injected so the same router serves both
// store backends.
func NewRouter(
	cfg *config.Config,
	db *sql.DB,
	users domain.UserRepository,
	messages domain.MessageRepository,
	tokenSvc *security.TokenService,
	passwordHasher *security.PasswordHasher,
) http.Handler {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Services
	authSvc := service.NewAuthService(users, tokenSvc, passwordHasher)
	userSvc := service.NewUserService(users, passwordHasher)
	msgSvc := service.NewMessageService(messages, users, cfg.AllowSelfMessages)
	convSvc := service.NewConversationService(messages)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "College Connect API",
			"docs":    "/docs",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(StoreCheck(db))

		// Auth routes (no auth required)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handleRegister(authSvc))
			r.Post("/login", handleLogin(authSvc))
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokenSvc, users))

			r.Route("/users", func(r chi.Router) {
				r.Get("/profile", handleGetProfile())
				r.Put("/profile", handleUpdateProfile(userSvc))
				r.Get("/students", handleListStudents(userSvc))
				r.Get("/students/{id}", handleGetStudent(userSvc))
			})

			r.Route("/messages", func(r chi.Router) {
				r.Post("/send", handleSendMessage(msgSvc))
				r.Get("/conversations", handleListConversations(convSvc))
				r.Get("/{userId}", handleListMessages(msgSvc))
			})
		})
	})

	return r
}
