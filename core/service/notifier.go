package service

import "github.com/rs/zerolog/log"

// Level classifies a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier shows short status messages to the user.
type Notifier interface {
	Notify(level Level, message string)
}

// LogNotifier writes notifications to the global logger.
type LogNotifier struct{}

// Notify logs message at a level matching its kind.
func (LogNotifier) Notify(level Level, message string) {
	switch level {
	case LevelError:
		log.Error().Msg(message)
	default:
		log.Info().Str("kind", string(level)).Msg(message)
	}
}
