package badger

import (
	"github.com/rs/zerolog"
)

// logger routes badger's internal logging to zerolog. Badger logs routine compaction
// progress at info level, which is demoted to debug.
type logger struct {
	log zerolog.Logger
}

func newLogger(log zerolog.Logger) *logger {
	return &logger{
		log: log.With().Str("component", "badger").Logger(),
	}
}

func (l *logger) Errorf(msg string, args ...interface{}) {
	l.log.Error().Msgf(msg, args...)
}

func (l *logger) Warningf(msg string, args ...interface{}) {
	l.log.Warn().Msgf(msg, args...)
}

func (l *logger) Infof(msg string, args ...interface{}) {
	l.log.Debug().Msgf(msg, args...)
}

func (l *logger) Debugf(msg string, args ...interface{}) {
	l.log.Debug().Msgf(msg, args...)
}
