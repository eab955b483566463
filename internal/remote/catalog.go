package remote

// Catalog reports which remote failure codes have a human-readable message.
// Codes outside the catalog are opaque and must be passed through unchanged.
type Catalog interface {
	HasMessageFor(code string) bool
	MessageFor(code string) string
}

// MessageCatalog is the default code to message catalog.
type MessageCatalog map[string]string

// HasMessageFor reports whether a code has a catalog message.
func (c MessageCatalog) HasMessageFor(code string) bool {
	_, ok := c[code]
	return ok
}

// MessageFor returns the catalog message for a code, or the code itself for
// unknown codes so the translator stays total.
func (c MessageCatalog) MessageFor(code string) string {
	if msg, ok := c[code]; ok {
		return msg
	}
	return code
}

// DefaultCatalog returns the built-in failure-code catalog.
func DefaultCatalog() MessageCatalog {
	return MessageCatalog{
		CodeEmailTaken:      "that email is already registered",
		CodeInvalidEmail:    "that email address is not valid",
		CodeUserNotFound:    "no account exists for that email",
		CodeWrongPassword:   "wrong password",
		CodeWeakPassword:    "that password is too weak",
		CodeTooManyRequests: "too many attempts, try again later",
		CodeNetworkFailure:  "network request failed",
		CodePopupClosed:     "the sign-in window was closed",
	}
}
