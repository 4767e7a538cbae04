package dataset

// exampleRoles is the required role sequence of a training example.
var exampleRoles = [...]string{RoleSystem, RoleUser, RoleAssistant}

// Validate reports whether an example is structurally well-formed: exactly
// three messages, role order system/user/assistant, and a present content
// field on every message. Empty content strings are permitted.
// Validate never fails with an error; malformed input simply reports false.
func Validate(ex Example) bool {
	if len(ex.Messages) != len(exampleRoles) {
		return false
	}
	for i, role := range exampleRoles {
		msg := ex.Messages[i]
		if msg.Role != role || msg.Content == nil {
			return false
		}
	}
	return true
}
