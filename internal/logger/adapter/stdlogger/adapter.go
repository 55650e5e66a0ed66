// Package stdlogger adapts the global zerolog logger to a printf style
// interface for libraries that expect Infof/Warningf/Errorf/Debugf methods.
package stdlogger

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger wraps the global zerolog logger behind printf style methods.
type Logger struct {
	logger zerolog.Logger
}

// New returns a new printf style adapter around the global zerolog logger.
func New() *Logger {
	return &Logger{logger: log.Logger}
}

// Infof logs at info level.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}

// Warningf logs at warn level.
func (l *Logger) Warningf(format string, v ...interface{}) {
	l.logger.Warn().Msgf(format, v...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}
