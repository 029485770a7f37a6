// Package system provides internal environment and bundle utilities for macperm.
package system

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable constants for macperm
const (
	// Core configuration
	EnvAppName  = "MACPERM_APP_NAME"
	EnvBundleID = "MACPERM_BUNDLE_ID"
	EnvDebug    = "MACPERM_DEBUG"

	// Monitoring
	EnvInterval     = "MACPERM_INTERVAL"
	EnvThreshold    = "MACPERM_THRESHOLD"
	EnvTutorialLink = "MACPERM_TUTORIAL_LINK"
	EnvPermissions  = "MACPERM_PERMISSIONS"

	// Logging
	EnvLogLevel = "MACPERM_LOG_LEVEL"
	EnvLogFile  = "MACPERM_LOG_FILE"

	// EnvSandboxContainer is set by macOS for processes running in the App Sandbox.
	EnvSandboxContainer = "APP_SANDBOX_CONTAINER_ID"
)

// GetBool returns the boolean value of an environment variable.
// Returns true if the variable is set to "1", "true", "yes", or "on" (case-insensitive).
// Returns false otherwise.
func GetBool(key string) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

// GetString returns the string value of an environment variable.
// Returns the defaultValue if the variable is not set or empty.
func GetString(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

// GetInt returns the integer value of an environment variable.
// Returns the defaultValue if the variable is not set, empty, or cannot be parsed.
func GetInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// GetStringSlice returns a slice of strings from an environment variable.
// The value should be comma-separated. Empty values are filtered out.
func GetStringSlice(key string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	var result []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}

	return result
}

// IsDebugEnabled checks if debug mode is enabled via environment variable.
func IsDebugEnabled() bool {
	return GetBool(EnvDebug)
}

// IsSandboxed reports whether the process runs inside the App Sandbox.
func IsSandboxed() bool {
	return os.Getenv(EnvSandboxContainer) != ""
}

// AllEnvVars returns a list of all known macperm environment variables.
func AllEnvVars() []string {
	return []string{
		EnvAppName,
		EnvBundleID,
		EnvDebug,
		EnvInterval,
		EnvThreshold,
		EnvTutorialLink,
		EnvPermissions,
		EnvLogLevel,
		EnvLogFile,
	}
}
