package core

// Logger is any service that can report messages & errors.
// expected args: error, map[string]interface{} (extras) or a UserRef (current user).
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// UserRef identifies the authenticated user a log entry relates to.
type UserRef struct {
	ID    string
	Email string
}
