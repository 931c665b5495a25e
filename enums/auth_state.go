package enums

// AuthState is the state of a session.Manager.
type AuthState string

const (
	AuthStateUnknown         AuthState = "unknown"
	AuthStateAuthenticated   AuthState = "authenticated"
	AuthStateUnauthenticated AuthState = "unauthenticated"
)

// TransitionReason names the operation that moved a session between states.
type TransitionReason string

const (
	TransitionStartup       TransitionReason = "startup"
	TransitionLogin         TransitionReason = "login"
	TransitionRegister      TransitionReason = "register"
	TransitionOAuth         TransitionReason = "oauth_callback"
	TransitionOAuthFailed   TransitionReason = "oauth_failed"
	TransitionVerify        TransitionReason = "verify"
	TransitionVerifyFailed  TransitionReason = "verify_failed"
	TransitionLogout        TransitionReason = "logout"
	TransitionRefreshFailed TransitionReason = "refresh_failed"
	TransitionProfileUpdate TransitionReason = "profile_update"
)
