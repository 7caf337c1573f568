// Package mail delivers transactional email for the championship backend:
// email-verification links and password-reset links.
package mail

import "context"

// Message is a single outbound email. Text is always set; when HTML is too,
// the message goes out as multipart/alternative with the text part as
// fallback.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends messages. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
