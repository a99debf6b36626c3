package common

// AccessTokenHeaderName is the gRPC metadata key carrying the access token.
const AccessTokenHeaderName = "access_token"

// SessionCookieName is the HTTP cookie carrying the access token.
const SessionCookieName = "session"

// RefreshCookieName is the HTTP cookie carrying the refresh token.
const RefreshCookieName = "session_refresh"

// View paths marked stale after successful mutations.
const (
	ViewHome      = "/"
	ViewDashboard = "/dashboard"
	ViewClients   = "/dashboard/clients"
)
