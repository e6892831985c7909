package routes

import (
	"github.com/go-chi/chi/v5"

	"panduankota/backend/internal/api"
	"panduankota/backend/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers.
// This keeps API route registration separate from the main router setup.
func RegisterAPIRoutes(r chi.Router, deps *api.Dependencies) {

	r.Route("/api/v1", func(v1 chi.Router) {

		// Public routes: auth entry points and read-only content.
		v1.Post("/auth/register", api.RegisterHandler(deps))
		v1.Post("/auth/login", api.LoginHandler(deps))

		v1.Get("/guides", api.ListGuidesHandler(deps))
		v1.Get("/guides/{id}", api.GetGuideHandler(deps))
		v1.Post("/guides/{id}/view", api.IncrementGuideViewHandler(deps))

		v1.Get("/posts", api.ListPostsHandler(deps))
		v1.Get("/posts/{id}", api.GetPostHandler(deps))
		v1.Get("/posts/{id}/comments", api.ListCommentsHandler(deps))

		// Authenticated group
		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.AuthMiddleware(deps.Services.Sessions))

			authed.Post("/auth/logout", api.LogoutHandler(deps))

			authed.Get("/profile", api.GetProfileHandler(deps))
			authed.Put("/profile/username", api.UpdateUsernameHandler(deps))
			authed.Put("/profile/password", api.UpdatePasswordHandler(deps))
			authed.Get("/profile/warnings/pending", api.PendingWarningHandler(deps))
			authed.Post("/profile/warnings/{id}/ack", api.AcknowledgeWarningHandler(deps))

			authed.Post("/guides", api.CreateGuideHandler(deps))
			authed.Put("/guides/{id}", api.UpdateGuideHandler(deps))
			authed.Delete("/guides/{id}", api.DeleteGuideHandler(deps))
			authed.Post("/guides/{id}/favorite", api.ToggleFavoriteHandler(deps))
			authed.Get("/guides/favorites", api.ListFavoritesHandler(deps))
			authed.Get("/guides/community", api.ListCommunityGuidesHandler(deps))

			authed.Post("/posts", api.CreatePostHandler(deps))
			authed.Put("/posts/{id}", api.UpdatePostHandler(deps))
			authed.Delete("/posts/{id}", api.DeletePostHandler(deps))
			authed.Post("/posts/{id}/comments", api.CreateCommentHandler(deps))
			authed.Put("/comments/{id}", api.UpdateCommentHandler(deps))
			authed.Delete("/comments/{id}", api.DeleteCommentHandler(deps))
			authed.Post("/posts/{id}/upvote", api.ToggleUpvoteHandler(deps))
			authed.Post("/posts/{id}/verify", api.AddVerificationHandler(deps))
			authed.Post("/posts/{id}/report", api.ReportPostHandler(deps))

			// Admin-only group
			authed.Group(func(admin chi.Router) {
				admin.Use(middleware.IsAdminMiddleware())

				admin.Get("/admin/users", api.ListUsersHandler(deps))
				admin.Post("/admin/users/{id}/block", api.BlockUserHandler(deps))
				admin.Post("/admin/users/{id}/unblock", api.UnblockUserHandler(deps))
				admin.Post("/admin/users/{id}/mute", api.MuteUserHandler(deps))
				admin.Post("/admin/users/{id}/unmute", api.UnmuteUserHandler(deps))
				admin.Post("/admin/users/{id}/warn", api.WarnUserHandler(deps))

				admin.Get("/admin/guides/pending", api.ListPendingGuidesHandler(deps))
				admin.Post("/admin/guides/{id}/approve", api.ApproveGuideHandler(deps))
				admin.Post("/admin/guides/{id}/reject", api.RejectGuideHandler(deps))

				admin.Post("/admin/posts/{id}/pin", api.TogglePinHandler(deps))
				admin.Post("/admin/posts/{id}/reports/resolve", api.ResolveReportsHandler(deps))
			})
		})
	})
}
