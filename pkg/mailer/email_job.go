package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (+Data, rendered per Language in the worker) or a raw
// Subject with Text/HTML must be set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "password_recovery", "welcome"
	Language string         `json:"language,omitempty"` // "en" (default) or "es"
	Data     map[string]any `json:"data,omitempty"`
}
