// File: internal/configfile/configfile.go
// Brief: Config document loading and path discovery for the clispec CLI.

// Package configfile reads clispec configuration documents from disk or a
// stream and implements the config path discovery rules shared by every
// subcommand.
package configfile

import (
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"

	"github.com/example/clispec/internal/document"
)

// EnvConfigPath is the environment variable that pins the config location.
// It wins over every other discovery source.
const EnvConfigPath = "CLISPEC_CONFIG"

// localCandidates are the working-directory fallbacks, probed in order.
var localCandidates = []string{".clispec", "clispec"}

// Load reads and decodes the config document at path. Both JSON and YAML
// syntax are accepted; the file extension is not consulted.
func Load(path string) (*document.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	doc, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return doc, nil
}

// LoadReader decodes a config document from a stream (stdin support).
func LoadReader(r io.Reader) (*document.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config stream: %w", err)
	}
	return decode(data)
}

func decode(data []byte) (*document.Value, error) {
	doc, err := document.Parse(data)
	if err != nil {
		return nil, err
	}
	if _, ok := doc.AsMapping(); !ok {
		return nil, fmt.Errorf("top level must be a mapping, got %s", doc.Kind())
	}
	return doc, nil
}

// Discover resolves the config path to load. Order: $CLISPEC_CONFIG when it
// names an existing file, then the explicit --config value, then ./.clispec,
// then ./clispec. Paths from the environment and the flag get ~ expansion.
func Discover(explicit string) (string, error) {
	if envVal := os.Getenv(EnvConfigPath); envVal != "" {
		path, err := homedir.Expand(envVal)
		if err == nil {
			if _, statErr := os.Stat(path); statErr == nil {
				return path, nil
			}
		}
	}
	if explicit != "" {
		path, err := homedir.Expand(explicit)
		if err != nil {
			return "", fmt.Errorf("expand config path: %w", err)
		}
		return path, nil
	}
	for _, cand := range localCandidates {
		if _, err := os.Stat(cand); err == nil {
			return cand, nil
		}
	}
	return "", fmt.Errorf("no config found: use --config, set %s, or place ./.clispec", EnvConfigPath)
}
