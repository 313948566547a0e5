package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth     = RouteApiV1 + "/auth"
	RouteRegister = RouteAuth + "/register"
	RouteLogin    = RouteAuth + "/login"
	RouteLogout   = RouteAuth + "/logout"

	// users
	RouteUsers = RouteApiV1 + "/users"
	RouteMe    = RouteUsers + "/me"

	// files
	RouteFiles    = RouteApiV1 + "/files"
	RouteUpload   = RouteFiles + "/upload"
	RouteDownload = RouteFiles + "/:file_id/download"
	RouteShare    = RouteFiles + "/share"
	RouteUsage    = RouteFiles + "/usage/:owner_id/:recipient_id"

	// admin
	RouteAdmin         = RouteApiV1 + "/admin"
	RouteAdminActivity = RouteAdmin + "/activity"
	RouteAdminShares   = RouteAdmin + "/shares"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
