package email

// Email is a plain outbound message for the notification collaborator.
type Email struct {
	To      []string
	Subject string
	Body    string
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}
