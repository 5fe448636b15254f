package logger

// Logger is the logging interface consumed by the cpematch library. Any structured logger that can satisfy
// this interface (such as the logrus adapter in internal/logger) can be handed to cpematch.SetLogger.
type Logger interface {
	Errorf(format string, args ...interface{})
	Error(args ...interface{})
	Warnf(format string, args ...interface{})
	Warn(args ...interface{})
	Infof(format string, args ...interface{})
	Info(args ...interface{})
	Debugf(format string, args ...interface{})
	Debug(args ...interface{})
}
