package dockerconfig

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/docker/api/types/registry"
)

const (
	configJSONFname = "config.json"
	dockerCfgFname  = ".dockercfg"
)

type authFileEntry struct {
	Auth  string `json:"auth"`
	Email string `json:"email,omitempty"`
}

// LoadRegistryAuth reads a registry credential record for registryURL
// from the credential files inside configDir. It consults the modern
// config.json layout first and falls back to the legacy .dockercfg
// one. It reports false when no usable entry exists, in which case
// pushes run unauthenticated.
func LoadRegistryAuth(configDir, registryURL string) (registry.AuthConfig, bool) {
	if configDir == "" || registryURL == "" {
		return registry.AuthConfig{}, false
	}

	entries := readAuthFile(filepath.Join(configDir, configJSONFname), true)
	if entries == nil {
		entries = readAuthFile(filepath.Join(configDir, dockerCfgFname), false)
	}

	entry, ok := entries[registryURL]
	if !ok {
		return registry.AuthConfig{}, false
	}

	decoded, err := base64.StdEncoding.DecodeString(entry.Auth)
	if err != nil {
		return registry.AuthConfig{}, false
	}
	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok || username == "" || password == "" {
		return registry.AuthConfig{}, false
	}

	return registry.AuthConfig{
		Username:      username,
		Password:      password,
		Email:         entry.Email,
		ServerAddress: registryURL,
	}, true
}

// readAuthFile parses one credential file. config.json nests the
// entries under an "auths" object; .dockercfg is the bare map.
func readAuthFile(path string, wrapped bool) map[string]authFileEntry {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	if wrapped {
		var f struct {
			Auths map[string]authFileEntry `json:"auths"`
		}
		if json.Unmarshal(data, &f) != nil {
			return nil
		}
		return f.Auths
	}

	var entries map[string]authFileEntry
	if json.Unmarshal(data, &entries) != nil {
		return nil
	}
	return entries
}
