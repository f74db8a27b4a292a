package router

import (
	"go-jobs-api/handler"
	"net/http"
)

// NewRouter wires the public and private route registries. Private routes
// pass through the auth middleware before reaching their handler.
func NewRouter(
	authHandler *handler.AuthHandler,
	jobCategoryHandler *handler.JobCategoryHandler,
	authMiddleware *handler.AuthMiddleware,
) http.Handler {
	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("POST /api/auth/register", handler.ErrorHandlingMiddleware(authHandler.Register))
	mux.Handle("POST /api/auth/login", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("POST /api/auth/refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))

	// Private routes
	mux.Handle("POST /api/auth/logout",
		authMiddleware.CheckAuthorization(handler.ErrorHandlingMiddleware(authHandler.Logout)))
	mux.Handle("GET /api/job-categories",
		authMiddleware.CheckAuthorization(handler.ErrorHandlingMiddleware(jobCategoryHandler.GetAll)))
	mux.Handle("GET /api/job-categories/{id}",
		authMiddleware.CheckAuthorization(handler.ErrorHandlingMiddleware(jobCategoryHandler.Get)))

	return mux
}
