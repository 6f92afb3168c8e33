package server

// Route path constants
const (
	// Account and session routes
	RouteRegister     = "/user/register"
	RouteLogin        = "/user/login"
	RouteLogout       = "/user/logout"
	RouteRefreshToken = "/user/refreshToken"
	RouteGoogleLogin  = "/user/googlelogin"
	RouteUpdateUser   = "/user/update"
	RouteDeleteUser   = "/user/delete"
	RouteGetUser      = "/user/getUser/{id}"
	RouteActivities   = "/user/activities"

	// Post routes
	RoutePostCreate          = "/post/create"
	RoutePostGetAll          = "/post/getAll"
	RoutePostFuture          = "/post/futurePosts"
	RoutePostGetByID         = "/post/getById/{id}"
	RoutePostUpdate          = "/post/update/{id}"
	RoutePostDelete          = "/post/delete/{id}"
	RoutePostLike            = "/post/like/{id}"
	RoutePostJoin            = "/post/join/{id}"
	RoutePostClearLikes      = "/post/deleteAllLikes/{id}"
	RoutePostClearJoinedList = "/post/deleteAllParticipants/{id}"

	// Comment routes
	RouteCommentCreate    = "/comment/create/{postId}"
	RouteCommentsByPost   = "/comment/postId/{postId}"
	RouteCommentByID      = "/comment/commentId/{commentId}"
	RouteCommentsByUser   = "/comment/userId/{userId}"
	RouteCommentUpdate    = "/comment/update/{commentId}"
	RouteCommentDelete    = "/comment/delete/{commentId}"
	RouteCommentDeleteAll = "/comment/deleteAll/{postId}"

	RouteChatMessage  = "/chat/message"
	RouteMediaPresign = "/media/presign"

	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
