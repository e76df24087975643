package utils

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger sets the global zerolog logger. Development gets the console
// writer, everything else gets JSON lines on stderr.
func InitLogger(env, level string) {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if env == "production" || env == "prod" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

func LogInfo(msg string, fields map[string]interface{}) {
	log.Info().Fields(fields).Msg(msg)
}

func LogError(msg string, err error, fields map[string]interface{}) {
	log.Error().Err(err).Fields(fields).Msg(msg)
}

func LogWarn(msg string, fields map[string]interface{}) {
	log.Warn().Fields(fields).Msg(msg)
}

func LogDebug(msg string, fields map[string]interface{}) {
	log.Debug().Fields(fields).Msg(msg)
}
