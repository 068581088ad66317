package config

import "github.com/ilyakaznacheev/cleanenv"

// parseEnv overlays TASKS_* environment variables onto config. Variables that
// are not set leave the current value untouched.
func parseEnv(config *Config) {
	if err := cleanenv.ReadEnv(config); err != nil {
		panic(err)
	}
}
