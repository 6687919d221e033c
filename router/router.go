package router

import (
	"net/http"

	_ "answerly/docs" // swagger spec registration
	"answerly/handler"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(authHandler *handler.AuthHandler, setHandler *handler.QuestionSetHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Session lifecycle. Refresh authenticates itself against the refresh
	// secret, so it sits outside the access-token gate.
	mux.Handle("POST /api/auth/register", handler.ErrorHandlingMiddleware(authHandler.Register))
	mux.Handle("POST /api/auth/login", handler.ErrorHandlingMiddleware(authHandler.Login))
	mux.Handle("GET /api/auth/refresh", handler.ErrorHandlingMiddleware(authHandler.Refresh))
	mux.Handle("POST /api/auth/logout", handler.ErrorHandlingMiddleware(authHandler.Logout))
	mux.Handle("GET /api/auth/me",
		handler.AuthMiddleware(handler.ErrorHandlingMiddleware(authHandler.Me)))
	mux.Handle("PATCH /api/auth/update-username",
		handler.AuthMiddleware(handler.ErrorHandlingMiddleware(authHandler.UpdateUsername)))

	// Authoring routes require a valid access token.
	mux.Handle("POST /api/sets",
		handler.AuthMiddleware(handler.ErrorHandlingMiddleware(setHandler.CreateSet)))
	mux.Handle("GET /api/sets",
		handler.AuthMiddleware(handler.ErrorHandlingMiddleware(setHandler.ListMySets)))
	mux.Handle("PUT /api/sets/{id}",
		handler.AuthMiddleware(handler.ErrorHandlingMiddleware(setHandler.UpdateSet)))
	mux.Handle("DELETE /api/sets/{id}",
		handler.AuthMiddleware(handler.ErrorHandlingMiddleware(setHandler.DeleteSet)))

	// Respondent routes are public; the share slug is the only credential.
	mux.Handle("GET /api/sets/{slug}", handler.ErrorHandlingMiddleware(setHandler.GetPublicSet))
	mux.Handle("POST /api/sets/{slug}/answers", handler.ErrorHandlingMiddleware(setHandler.SubmitAnswers))
	mux.Handle("GET /api/sets/{slug}/answers", handler.ErrorHandlingMiddleware(setHandler.GetSetAnswers))

	// Platform-wide totals for the admin dashboard.
	mux.Handle("GET /api/admin/sets",
		handler.AuthMiddleware(handler.AdminMiddleware(handler.ErrorHandlingMiddleware(setHandler.AllSets))))
	mux.Handle("GET /api/admin/answers",
		handler.AuthMiddleware(handler.AdminMiddleware(handler.ErrorHandlingMiddleware(setHandler.AllAnswers))))

	return mux
}
