// Package dockerconfig resolves the configuration needed to talk to a
// Docker engine from layered, precedence-ordered sources: embedded
// defaults, a per-user override file, the process environment and the
// process-wide settings map.
package dockerconfig

import (
	"fmt"
	"net/url"

	"github.com/docker/docker/api/types/registry"
)

// The fixed key set recognized during resolution. Keys outside this set
// are ignored by the environment and settings layers.
const (
	KeyHost             = "DOCKER_HOST"
	KeyTLSVerify        = "DOCKER_TLS_VERIFY"
	KeyConfigDir        = "DOCKER_CONFIG"
	KeyCertPath         = "DOCKER_CERT_PATH"
	KeyAPIVersion       = "api.version"
	KeyRegistryUsername = "registry.username"
	KeyRegistryPassword = "registry.password"
	KeyRegistryEmail    = "registry.email"
	KeyRegistryURL      = "registry.url"
)

var configKeys = []string{
	KeyHost,
	KeyTLSVerify,
	KeyConfigDir,
	KeyCertPath,
	KeyAPIVersion,
	KeyRegistryUsername,
	KeyRegistryPassword,
	KeyRegistryEmail,
	KeyRegistryURL,
}

// ClientConfig holds everything needed to construct an engine client.
// Instances are immutable once built and safe to share across
// sequential command invocations.
type ClientConfig struct {
	// Host is the engine endpoint. Its scheme is guaranteed to be
	// either tcp or unix.
	Host *url.URL

	// APIVersion pins the engine API version. Empty means the client
	// should negotiate it.
	APIVersion string

	// ConfigDir points to the directory holding auxiliary credential
	// files (config.json, .dockercfg).
	ConfigDir string

	RegistryUsername string
	RegistryPassword string
	RegistryEmail    string
	RegistryURL      string

	// Trust is only set when TLS verification was requested. See
	// Builder.Build for the derivation rules.
	Trust *TrustContext
}

// AuthConfig returns the registry credential record derived from the
// registry fields. It reports false unless username, password and url
// are all set; callers must then push and pull unauthenticated.
func (c *ClientConfig) AuthConfig() (registry.AuthConfig, bool) {
	if c.RegistryUsername == "" || c.RegistryPassword == "" || c.RegistryURL == "" {
		return registry.AuthConfig{}, false
	}
	return registry.AuthConfig{
		Username:      c.RegistryUsername,
		Password:      c.RegistryPassword,
		Email:         c.RegistryEmail,
		ServerAddress: c.RegistryURL,
	}, true
}

// Equal compares two configs field by field. Trust contexts are
// compared by their certificate directory; the loaded key material is
// transient and excluded on purpose.
func (c *ClientConfig) Equal(o *ClientConfig) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.Host.String() != o.Host.String() {
		return false
	}
	if c.APIVersion != o.APIVersion || c.ConfigDir != o.ConfigDir {
		return false
	}
	if c.RegistryUsername != o.RegistryUsername || c.RegistryPassword != o.RegistryPassword {
		return false
	}
	if c.RegistryEmail != o.RegistryEmail || c.RegistryURL != o.RegistryURL {
		return false
	}
	return c.Trust.dir() == o.Trust.dir()
}

// String renders the config for logs. The registry password is
// redacted.
func (c *ClientConfig) String() string {
	password := ""
	if c.RegistryPassword != "" {
		password = "[redacted]"
	}
	return fmt.Sprintf(
		"{host=%s apiVersion=%q configDir=%q registry={username=%q password=%s email=%q url=%q} tls=%q}",
		c.Host, c.APIVersion, c.ConfigDir,
		c.RegistryUsername, password, c.RegistryEmail, c.RegistryURL,
		c.Trust.dir())
}
