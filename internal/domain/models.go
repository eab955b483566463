package domain

// ProviderKind identifies a supported sign-in provider.
type ProviderKind string

const (
	ProviderPassword ProviderKind = "password"
	ProviderFacebook ProviderKind = "facebook"
)

// FacebookScopes are the permission scopes requested during federated sign-in.
var FacebookScopes = []string{"public_profile", "email"}

// Identity is the decoded representation of a signed-in user. Email is held
// only transiently; it must never reach the public profile location.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
	PhotoURL    string
}

// Public returns the identity stripped of its private email field.
func (i *Identity) Public() PublicProfile {
	return PublicProfile{
		ID:          i.ID,
		DisplayName: i.DisplayName,
		PhotoURL:    i.PhotoURL,
	}
}

// PublicProfile is the publicly storable view of an identity.
type PublicProfile struct {
	ID          string
	DisplayName string
	PhotoURL    string
}

// PresenceRecord marks a live connection for an identity. Entries are
// appended to a per-identity presence log and retracted by the store when
// the connection that created them drops. AuthenticatedAt holds the store's
// server-timestamp sentinel until the write resolves it.
type PresenceRecord struct {
	AuthenticatedAt any
	User            PublicProfile
}

// Value returns the record in the store's wire shape.
func (r PresenceRecord) Value() map[string]any {
	return map[string]any{
		"authenticatedAt": r.AuthenticatedAt,
		"user": map[string]any{
			"id":          r.User.ID,
			"displayName": r.User.DisplayName,
			"photoURL":    r.User.PhotoURL,
		},
	}
}
