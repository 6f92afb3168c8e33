package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// Public
	s.RegisterRouteHandler("POST "+RouteRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteRefreshToken, ChainMiddleware(s.RefreshTokenHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteGoogleLogin, ChainMiddleware(s.GoogleLoginHandler(), s.APIMiddleware()...))

	// Account
	s.RegisterRouteHandler("PUT "+RouteUpdateUser, s.protected(s.UpdateUserHandler))
	s.RegisterRouteHandler("DELETE "+RouteDeleteUser, s.protected(s.DeleteUserHandler))
	s.RegisterRouteHandler("GET "+RouteGetUser, s.protected(s.GetUserHandler))
	s.RegisterRouteHandler("GET "+RouteActivities, s.protected(s.ActivitiesHandler))

	// Posts
	s.RegisterRouteHandler("POST "+RoutePostCreate, s.protected(s.CreatePostHandler))
	s.RegisterRouteHandler("GET "+RoutePostGetAll, s.protected(s.ListPostsHandler))
	s.RegisterRouteHandler("GET "+RoutePostFuture, s.protected(s.FuturePostsHandler))
	s.RegisterRouteHandler("GET "+RoutePostGetByID, s.protected(s.GetPostHandler))
	s.RegisterRouteHandler("PUT "+RoutePostUpdate, s.protected(s.UpdatePostHandler))
	s.RegisterRouteHandler("DELETE "+RoutePostDelete, s.protected(s.DeletePostHandler))
	s.RegisterRouteHandler("POST "+RoutePostLike, s.protected(s.LikePostHandler))
	s.RegisterRouteHandler("POST "+RoutePostJoin, s.protected(s.JoinPostHandler))
	s.RegisterRouteHandler("DELETE "+RoutePostClearLikes, s.protected(s.ClearLikesHandler))
	s.RegisterRouteHandler("DELETE "+RoutePostClearJoinedList, s.protected(s.ClearParticipantsHandler))

	// Comments
	s.RegisterRouteHandler("POST "+RouteCommentCreate, s.protected(s.CreateCommentHandler))
	s.RegisterRouteHandler("GET "+RouteCommentsByPost, s.protected(s.CommentsByPostHandler))
	s.RegisterRouteHandler("GET "+RouteCommentByID, s.protected(s.GetCommentHandler))
	s.RegisterRouteHandler("GET "+RouteCommentsByUser, s.protected(s.CommentsByUserHandler))
	s.RegisterRouteHandler("PUT "+RouteCommentUpdate, s.protected(s.UpdateCommentHandler))
	s.RegisterRouteHandler("DELETE "+RouteCommentDelete, s.protected(s.DeleteCommentHandler))
	s.RegisterRouteHandler("DELETE "+RouteCommentDeleteAll, s.protected(s.DeleteAllCommentsHandler))

	s.RegisterRouteHandler("POST "+RouteChatMessage, s.protected(s.ChatMessageHandler))
	s.RegisterRouteHandler("POST "+RouteMediaPresign, s.protected(s.PresignUploadHandler))

	// CORS preflight for every API route
	s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {}, s.CorsMiddleware))

	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())
}

// protected wraps an identity handler with the API middleware and bearer
// token authentication.
func (s *Server) protected(h identityHandler) http.HandlerFunc {
	return ChainMiddleware(s.Authenticated(h), s.APIMiddleware()...)
}
