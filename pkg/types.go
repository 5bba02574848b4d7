package pkg

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	ProjectName    = "recrep"
	LogFileName    = "recrep.log"
	ConfigFileName = "config.yaml"

	// EnvPrefix prefixes the environment variables overriding flags.
	EnvPrefix = "RECREP"
	// TokenEnv is the environment variable holding the API token.
	TokenEnv = "RECREP_APPCENTER_API_TOKEN"
)

// LogFilePath returns the path of the log file in the XDG state directory,
// creating its parent directory.
func LogFilePath() (string, error) {
	return xdg.StateFile(filepath.Join(ProjectName, LogFileName))
}

// ConfigFilePath looks up the config file in the XDG config directories.
func ConfigFilePath() (string, error) {
	return xdg.SearchConfigFile(filepath.Join(ProjectName, ConfigFileName))
}
