package dockerconfig

import (
	"crypto/tls"
	"path/filepath"

	"github.com/docker/go-connections/tlsconfig"
)

// TrustContext references the key material used to establish a
// mutually authenticated TLS connection to the engine. Only the
// directory layout is fixed at construction; the material itself is
// read when a connection is set up.
type TrustContext struct {
	// Dir is the certificate directory the context was derived from.
	Dir string

	CAFile   string
	CertFile string
	KeyFile  string
}

// NewTrustContext returns a TrustContext over the conventional
// ca.pem/cert.pem/key.pem files inside dir.
func NewTrustContext(dir string) *TrustContext {
	return &TrustContext{
		Dir:      dir,
		CAFile:   filepath.Join(dir, "ca.pem"),
		CertFile: filepath.Join(dir, "cert.pem"),
		KeyFile:  filepath.Join(dir, "key.pem"),
	}
}

// TLSConfig loads the key material from the trust directory and
// returns a client TLS configuration built from it.
func (t *TrustContext) TLSConfig() (*tls.Config, error) {
	return tlsconfig.Client(tlsconfig.Options{
		CAFile:   t.CAFile,
		CertFile: t.CertFile,
		KeyFile:  t.KeyFile,
	})
}

// dir tolerates a nil receiver so configs without TLS compare and
// format cleanly.
func (t *TrustContext) dir() string {
	if t == nil {
		return ""
	}
	return t.Dir
}
