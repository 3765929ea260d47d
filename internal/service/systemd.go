// Package service generates systemd user units that run a boomer service.
package service

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

const unitTemplate = `[Unit]
Description=Boomerverse {{.Service}} service
After=network-online.target
Wants=network-online.target

[Service]
Type=simple
ExecStart={{.BinaryPath}} serve {{.Service}}{{if .Addr}} --addr {{.Addr}}{{end}} --log-file {{.LogPath}}/{{.Service}}.log
WorkingDirectory={{.WorkingDirectory}}
Restart=on-failure
RestartSec=5
Environment=PATH=/usr/local/bin:/usr/bin:/bin

[Install]
WantedBy=default.target
`

var unitTmpl = template.Must(template.New("unit").Parse(unitTemplate))

// UnitConfig holds the configuration for generating a systemd unit
type UnitConfig struct {
	Service          string
	BinaryPath       string
	Addr             string
	LogPath          string
	WorkingDirectory string // secrets are read from a .env file here
}

// UnitName returns the unit file name for service
func UnitName(service string) string {
	return fmt.Sprintf("boomer-%s.service", service)
}

// GenerateUnit renders the systemd unit for config
func GenerateUnit(config UnitConfig) (string, error) {
	if config.Service == "" || config.BinaryPath == "" {
		return "", fmt.Errorf("service name and binary path are required")
	}

	var buf bytes.Buffer
	if err := unitTmpl.Execute(&buf, config); err != nil {
		return "", fmt.Errorf("failed to execute unit template: %w", err)
	}

	return buf.String(), nil
}

// GetUnitPath returns the path where the unit should be installed
func GetUnitPath(service string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".config", "systemd", "user", UnitName(service)), nil
}

// GetDefaultLogPath returns the default directory for service logs
func GetDefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".local", "share", "boomer", "logs"), nil
}
