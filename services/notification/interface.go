package notification

import "context"

// Mailer delivers booking emails. Send methods report whether the message
// was handed off, so callers can stamp the matching sent-at marker only on
// success; a disabled mailer reports false without erroring.
type Mailer interface {
	// SendCustomer emails a customer, appending the configured contact
	// footer. An empty subject falls back to the configured default.
	SendCustomer(to, subject, body string) bool
	// SendAdmin emails the configured admin notification address.
	SendAdmin(subject, body string) bool
}

// PushSender broadcasts a notification to every registered admin device.
type PushSender interface {
	Broadcast(ctx context.Context, title, body string, data map[string]string) error
}
