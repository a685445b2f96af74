// internal/domain/models/authmethods.go
package models

// Sign-in methods recorded on login audit events.
const (
	AuthPassword = "password"
	AuthGoogle   = "google"
)

// AuthMethod is a sign-in option offered on the login screen.
type AuthMethod struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Path  string `json:"path"` // endpoint that starts the flow
}

// AllAuthMethods lists every sign-in method the hub supports.
var AllAuthMethods = []AuthMethod{
	{Value: AuthPassword, Label: "Identifiant et mot de passe", Path: "/login"},
	{Value: AuthGoogle, Label: "Google", Path: "/auth/google"},
}

// IsValidAuthMethod checks if a value is a supported auth method.
func IsValidAuthMethod(value string) bool {
	for _, m := range AllAuthMethods {
		if m.Value == value {
			return true
		}
	}
	return false
}

// EnabledAuthMethods returns the methods available with the current
// configuration. Password sign-in is always on; Google needs OAuth
// credentials.
func EnabledAuthMethods(googleEnabled bool) []AuthMethod {
	out := make([]AuthMethod, 0, len(AllAuthMethods))
	for _, m := range AllAuthMethods {
		if m.Value == AuthGoogle && !googleEnabled {
			continue
		}
		out = append(out, m)
	}
	return out
}
