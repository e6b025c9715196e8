package email

// Provider is the delivery collaborator. The booking core only ever talks
// to this interface; actual delivery (SMTP, a queue, a noop) is wiring.
type Provider interface {
	Send(email *Email) error
	Close() error
}
