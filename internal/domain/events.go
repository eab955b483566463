package domain

// EventType identifies a domain event topic consumed by the surrounding
// application's event layer.
type EventType string

const (
	EventAuthSignIn           EventType = "AUTH_SIGN_IN"
	EventAuthSignUp           EventType = "AUTH_SIGN_UP"
	EventAuthResetPassword    EventType = "AUTH_RESET_PASSWORD"
	EventAuthIdentityChanged  EventType = "AUTH_ON_IDENTITY_CHANGED"
	EventAuthPermissionDenied EventType = "AUTH_ON_PERMISSION_DENIED"
	EventAuthStart            EventType = "AUTH_START"
	EventConnectivityOnline   EventType = "CONNECTIVITY_ONLINE"
	EventConnectivityOffline  EventType = "CONNECTIVITY_OFFLINE"
)

// EventStatus tracks the lifecycle of action-triggered events.
type EventStatus string

const (
	StatusPending EventStatus = "pending"
	StatusSuccess EventStatus = "success"
	StatusError   EventStatus = "error"
)

// EventMeta carries request-scoped metadata for action-triggered events.
type EventMeta struct {
	RequestID string
}

// Event is a structured domain notification. Identity and Err are set
// depending on the event type; both may be nil.
type Event struct {
	Type     EventType
	Status   EventStatus
	Identity *Identity
	Err      error
	Meta     EventMeta
}
