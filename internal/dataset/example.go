// Package dataset defines the chat-format training example model, its
// structural validator, and the shuffle/split/persist step that turns an
// example pool into training and validation JSONL files.
package dataset

// Chat message roles in the order a training example requires them.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat message inside a training example.
// Content is a pointer so that a missing "content" field in decoded input is
// distinguishable from an empty string: empty is valid, absent is not.
type Message struct {
	Role    string  `json:"role"`
	Content *string `json:"content,omitempty"`
}

// NewMessage builds a message with the content field present.
func NewMessage(role, content string) Message {
	return Message{Role: role, Content: &content}
}

// Text returns the message content, or "" when the field is absent.
func (m Message) Text() string {
	if m.Content == nil {
		return ""
	}
	return *m.Content
}

// Example is a single supervised fine-tuning unit: exactly three messages
// with roles system, user, assistant in that order. Violating examples are
// rejected by Validate, never repaired.
type Example struct {
	Messages []Message `json:"messages"`
}

// NewExample assembles a well-formed three-message example.
func NewExample(system, user, assistant string) Example {
	return Example{Messages: []Message{
		NewMessage(RoleSystem, system),
		NewMessage(RoleUser, user),
		NewMessage(RoleAssistant, assistant),
	}}
}
