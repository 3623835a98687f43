package dockerconfig

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/dockwright/dockwright/pkg/types"
)

// Builder assembles a ClientConfig, converting the raw string values
// of the merged configuration layers and validating them as a whole.
type Builder struct {
	host             string
	apiVersion       string
	configDir        string
	certPath         string
	registryUsername string
	registryPassword string
	registryEmail    string
	registryURL      string
	tlsVerify        bool
	trust            *TrustContext
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithProperties sets every builder field from the fixed key set of p.
func (b *Builder) WithProperties(p map[string]string) *Builder {
	return b.
		WithHost(p[KeyHost]).
		WithTLSVerify(p[KeyTLSVerify]).
		WithConfigDir(p[KeyConfigDir]).
		WithCertPath(p[KeyCertPath]).
		WithAPIVersion(p[KeyAPIVersion]).
		WithRegistryUsername(p[KeyRegistryUsername]).
		WithRegistryPassword(p[KeyRegistryPassword]).
		WithRegistryEmail(p[KeyRegistryEmail]).
		WithRegistryURL(p[KeyRegistryURL])
}

func (b *Builder) WithHost(host string) *Builder {
	b.host = host
	return b
}

func (b *Builder) WithAPIVersion(v string) *Builder {
	b.apiVersion = v
	return b
}

func (b *Builder) WithConfigDir(dir string) *Builder {
	b.configDir = dir
	return b
}

func (b *Builder) WithCertPath(path string) *Builder {
	b.certPath = path
	return b
}

func (b *Builder) WithRegistryUsername(u string) *Builder {
	b.registryUsername = u
	return b
}

func (b *Builder) WithRegistryPassword(p string) *Builder {
	b.registryPassword = p
	return b
}

func (b *Builder) WithRegistryEmail(e string) *Builder {
	b.registryEmail = e
	return b
}

func (b *Builder) WithRegistryURL(u string) *Builder {
	b.registryURL = u
	return b
}

// WithTLSVerify parses the raw flag value. A trimmed, case-insensitive
// "true" or a "1" enable verification; anything else, including the
// empty string, disables it.
func (b *Builder) WithTLSVerify(raw string) *Builder {
	trimmed := strings.TrimSpace(raw)
	b.tlsVerify = strings.EqualFold(trimmed, "true") || trimmed == "1"
	return b
}

// WithTrustContext supplies a trust context directly. It takes
// precedence over the tls-verify/cert-path derivation, which allows
// key material that does not live on the local filesystem.
func (b *Builder) WithTrustContext(t *TrustContext) *Builder {
	b.trust = t
	return b
}

// Build validates the collected values and returns an immutable
// ClientConfig. All validation failures are types.ErrConfig.
func (b *Builder) Build() (*ClientConfig, error) {
	if b.host == "" {
		return nil, types.ErrConfig{Reason: "no engine host was specified (" + KeyHost + " is unset)"}
	}

	host, err := url.Parse(b.host)
	if err != nil {
		return nil, types.ErrConfig{Reason: fmt.Sprintf("cannot parse engine host '%s'; %s", b.host, err)}
	}
	if host.Scheme != "tcp" && host.Scheme != "unix" {
		return nil, types.ErrConfig{Reason: fmt.Sprintf(
			"unsupported protocol scheme in '%s', only 'tcp://' and 'unix://' are supported", b.host)}
	}

	trust := b.trust
	if trust == nil && b.tlsVerify {
		trust, err = deriveTrustContext(b.certPath)
		if err != nil {
			return nil, err
		}
	}

	return &ClientConfig{
		Host:             host,
		APIVersion:       b.apiVersion,
		ConfigDir:        b.configDir,
		RegistryUsername: b.registryUsername,
		RegistryPassword: b.registryPassword,
		RegistryEmail:    b.registryEmail,
		RegistryURL:      b.registryURL,
		Trust:            trust,
	}, nil
}

// deriveTrustContext checks the certificate path and returns a trust
// context over it. TLS verification without a usable certificate
// directory is a configuration error, not something to defer.
func deriveTrustContext(certPath string) (*TrustContext, error) {
	if certPath == "" {
		return nil, types.ErrConfig{Reason: fmt.Sprintf(
			"TLS verification is enabled (%s) but the certificate path (%s) is not set",
			KeyTLSVerify, KeyCertPath)}
	}
	fi, err := os.Stat(certPath)
	if err != nil {
		return nil, types.ErrConfig{Reason: fmt.Sprintf(
			"TLS verification is enabled (%s) but the certificate path '%s' does not exist",
			KeyTLSVerify, certPath)}
	}
	if !fi.IsDir() {
		return nil, types.ErrConfig{Reason: fmt.Sprintf(
			"TLS verification is enabled (%s) but the certificate path '%s' is not a directory",
			KeyTLSVerify, certPath)}
	}
	return NewTrustContext(certPath), nil
}
