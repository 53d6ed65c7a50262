package domain

// Feedback is a message a user submits to the site operators.
// It is not persisted; the mailer is its only destination.
type Feedback struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Content string `json:"content"`
}
