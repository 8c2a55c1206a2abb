package core

// Logger is any service that can log
type Logger interface {
	// args: error | map[string]interface{} | session.Session
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
