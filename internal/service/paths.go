package service

import (
	"fmt"

	"github.com/jvorcak/este/internal/store"
)

// Paths locates the per-user storage locations in the realtime store. The
// profile and email roots are distinct so the email record can be secured
// separately from the public profile.
type Paths struct {
	Profiles     string
	Emails       string
	Presence     string
	Connectivity string
}

// DefaultPaths returns the conventional store layout.
func DefaultPaths() Paths {
	return Paths{
		Profiles:     "users",
		Emails:       "emails",
		Presence:     "presence",
		Connectivity: store.DefaultConnectivityPath,
	}
}

// Profile returns the public per-user profile path.
func (p Paths) Profile(uid string) string {
	return fmt.Sprintf("%s/%s", p.Profiles, uid)
}

// Email returns the private per-user email path.
func (p Paths) Email(uid string) string {
	return fmt.Sprintf("%s/%s", p.Emails, uid)
}

// PresenceEntry returns the path of one connection's entry in a user's
// presence log.
func (p Paths) PresenceEntry(uid, connectionKey string) string {
	return fmt.Sprintf("%s/%s/%s", p.Presence, uid, connectionKey)
}
