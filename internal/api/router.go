package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"forum/internal/api/handlers"
	"forum/internal/auth"
	"forum/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(tokens *auth.Service, userService services.UserServiceProvider, questionService services.QuestionServiceProvider, eventService services.EventServiceProvider, corsOrigin string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens, eventService)
	questionHandler := handlers.NewQuestionHandler(questionService, eventService)
	eventHandler := handlers.NewEventHandler(eventService)

	// Public endpoints
	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)
	r.Get("/questions", questionHandler.List)
	r.Get("/events/recent", eventHandler.Recent)

	// Write endpoints require a valid bearer token
	r.Group(func(r chi.Router) {
		r.Use(tokens.Middleware())
		r.Post("/questions", questionHandler.Create)
		r.Post("/questions/{id}/reply", questionHandler.Reply)
		r.Delete("/questions/{id}", questionHandler.Delete)
		r.Delete("/questions/{qid}/replies/{rid}", questionHandler.DeleteReply)
	})

	return r
}
