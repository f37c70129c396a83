package env

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Load reads the given dotenv files into the process environment, without overriding vars already set.
// Missing files are only logged, so a deploy that relies on real env vars keeps working.
func Load(log *zap.SugaredLogger, files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Debugw("dotenv", "status", "skipped", "files", files, "reason", err)
	}
}

// OrDefault return the result of searching an env var, if the env var value is empty, return a default value
func OrDefault(log *zap.SugaredLogger, env, def string) string {
	if v, ok := os.LookupEnv(env); ok && v != "" {
		return v
	}
	log.Debugw("env", "key", env, "default", def)
	return def
}

// Must return the value of an env var, exiting the process if it is not set
func Must(log *zap.SugaredLogger, env string) string {
	v, ok := os.LookupEnv(env)
	if !ok || v == "" {
		log.Fatal("missing required env var ", env)
	}
	return v
}

// DurationDefault return the result of searching an env var, if the env var value is empty, return a default value as time.Duration
func DurationDefault(log *zap.SugaredLogger, env, def string) time.Duration {
	orDefault := OrDefault(log, env, def)
	duration, err := time.ParseDuration(orDefault)
	if err != nil {
		log.Warn("error parsing ", orDefault, " as duration: ", err)
	}
	return duration
}

// BoolDefault return the result of searching an env var, if the env var value is empty, return a default value as bool
func BoolDefault(log *zap.SugaredLogger, env, def string) bool {
	orDefault := OrDefault(log, env, def)
	b, err := strconv.ParseBool(orDefault)
	if err != nil {
		log.Warn("error parsing ", orDefault, " as bool: ", err)
	}
	return b
}

// IntDefault return the result of searching an env var, if the env var value is empty, return a default value as int
func IntDefault(log *zap.SugaredLogger, env, def string) int {
	orDefault := OrDefault(log, env, def)
	i, err := strconv.Atoi(orDefault)
	if err != nil {
		log.Warn("error parsing ", orDefault, " as int: ", err)
	}
	return i
}
