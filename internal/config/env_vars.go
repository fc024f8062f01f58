package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	portEnvVar       = "PORT"
	appNameVar       = "APP_NAME"
	apiURLVar        = "API_URL"
	logLevelVar      = "LOG_LEVEL"
	fakeAPISecretVar = "FAKEAPI_JWT_SECRET"
	fakeAPIPortVar   = "FAKEAPI_PORT"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// LoadDotEnv reads a .env file into the process environment when present.
// Variables already set in the environment win.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "SAFISAUDE Console")
}

// GetAPIBaseURL returns the base URL of the remote REST API, without a trailing slash.
func (EnvVars) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiURLVar, "http://localhost:3001/api"), "/")
}

func (EnvVars) GetLogLevel() string {
	return strings.ToLower(GetEnv(logLevelVar, "info"))
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func (EnvVars) GetFakeAPISecret() string {
	return GetEnv(fakeAPISecretVar, "dev-secret")
}

func (EnvVars) GetFakeAPIPort() string {
	port := GetEnv(fakeAPIPortVar, "3001")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
