package config

import (
	"fmt"
	"os"
)

const (
	hostEnvVar    = "HOST"
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	defaultHost   = "0.0.0.0"
	defaultPort   = "8000"
	defaultEnvVar = "ENV"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAddr() string {
	host := GetEnv(hostEnvVar, defaultHost)
	port := GetEnv(portEnvVar, defaultPort)
	return fmt.Sprintf("%s:%s", host, port)
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Villicus")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv(defaultEnvVar)
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
