package config

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var envOnce sync.Once

// InitEnv binds Viper to process environment variables. Everything the
// gateway configures, from artifact paths to MySQL credentials, comes in
// through the environment, so this runs before any config struct unmarshal.
// Safe to call more than once.
func InitEnv() {
	envOnce.Do(func() {
		viper.AutomaticEnv()
		log.Info().Msg("Environment config bound")
	})
}
