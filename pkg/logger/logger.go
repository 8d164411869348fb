package logger

// LoggerInstance defines the interface for logging backends.
type LoggerInstance interface {
	Log(message string, keyvals ...any)
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
	Fatal(message string, keyvals ...any)
}

// Logger dispatches every call to all of its backends.
type Logger struct {
	instances []LoggerInstance
}

var singleton *Logger

// Init installs the global backends. Calls made before Init are dropped.
func Init(instances ...LoggerInstance) {
	singleton = &Logger{instances: instances}
}

func dispatch(write func(LoggerInstance)) {
	l := singleton
	if l == nil {
		return
	}
	for _, instance := range l.instances {
		write(instance)
	}
}

func Log(message string, keyvals ...any) {
	dispatch(func(i LoggerInstance) { i.Log(message, keyvals...) })
}

func Info(message string, keyvals ...any) {
	dispatch(func(i LoggerInstance) { i.Info(message, keyvals...) })
}

func Warn(message string, keyvals ...any) {
	dispatch(func(i LoggerInstance) { i.Warn(message, keyvals...) })
}

func Error(message string, keyvals ...any) {
	dispatch(func(i LoggerInstance) { i.Error(message, keyvals...) })
}

func Debug(message string, keyvals ...any) {
	dispatch(func(i LoggerInstance) { i.Debug(message, keyvals...) })
}

// Fatal logs at FATAL level. Backends are expected to exit the process.
func Fatal(message string, keyvals ...any) {
	dispatch(func(i LoggerInstance) { i.Fatal(message, keyvals...) })
}

// Fields is a set of key/value pairs prepended to every message logged
// through it, e.g. the document a worker is processing.
type Fields []any

// With returns Fields holding keyvals.
func With(keyvals ...any) Fields {
	return Fields(keyvals)
}

// With returns a copy of f extended by keyvals.
func (f Fields) With(keyvals ...any) Fields {
	out := make(Fields, 0, len(f)+len(keyvals))
	out = append(out, f...)
	return append(out, keyvals...)
}

func (f Fields) merge(keyvals []any) []any {
	return append(f.With(), keyvals...)
}

func (f Fields) Debug(message string, keyvals ...any) { Debug(message, f.merge(keyvals)...) }
func (f Fields) Info(message string, keyvals ...any)  { Info(message, f.merge(keyvals)...) }
func (f Fields) Warn(message string, keyvals ...any)  { Warn(message, f.merge(keyvals)...) }
func (f Fields) Error(message string, keyvals ...any) { Error(message, f.merge(keyvals)...) }
