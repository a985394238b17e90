package util

import (
	"errors"
	"fmt"
	"os"
	"regexp"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrEnvNotSet      = errors.New("environment variable not set")
)

var envVarPattern = regexp.MustCompile(`\${([^}]+)}`)

var envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func ExpandEnvStrict(s string) (string, error) {
	matches := envVarPattern.FindAllStringSubmatch(s, -1)
	for _, m := range matches {
		name := m[1]
		if !envNamePattern.MatchString(name) {
			return "", fmt.Errorf("invalid environment variable reference %q", m[0])
		}
		if _, ok := os.LookupEnv(name); !ok {
			return "", fmt.Errorf("%s: %w", name, ErrEnvNotSet)
		}
	}

	return os.ExpandEnv(s), nil
}
