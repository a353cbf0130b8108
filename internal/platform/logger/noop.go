package logger

// NoOpLogger discards everything. Used in tests.
type NoOpLogger struct{}

func NewNoOp() Logger { return &NoOpLogger{} }

func (l *NoOpLogger) Debug(args ...interface{})                   {}
func (l *NoOpLogger) Debugf(template string, args ...interface{}) {}
func (l *NoOpLogger) Info(args ...interface{})                    {}
func (l *NoOpLogger) Infof(template string, args ...interface{})  {}
func (l *NoOpLogger) Warn(args ...interface{})                    {}
func (l *NoOpLogger) Warnf(template string, args ...interface{})  {}
func (l *NoOpLogger) Error(args ...interface{})                   {}
func (l *NoOpLogger) Errorf(template string, args ...interface{}) {}
func (l *NoOpLogger) Fatal(args ...interface{})                   {}
func (l *NoOpLogger) Fatalf(template string, args ...interface{}) {}
func (l *NoOpLogger) With(args ...interface{}) Logger             { return l }
