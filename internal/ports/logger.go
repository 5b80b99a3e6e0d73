package ports

import "time"

// Logger is the structured logger every wallbridge component writes to.
// The bridge and renderer call it while holding their own locks, so
// implementations must not call back into them.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is one key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Err attaches err under the key "error".
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// Any attaches an arbitrary value. Values implementing fmt.Stringer, such
// as domain.Anomaly or a renderer state, are logged by their String form;
// anything else is encoded as JSON by the zerolog adapter.
func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}
