package enums

// SessionStatus is the lifecycle of a scheduled skill session (not to be
// confused with the authentication session).
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
	SessionMissed    SessionStatus = "missed"
)
