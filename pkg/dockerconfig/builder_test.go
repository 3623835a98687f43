package dockerconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dockwright/dockwright/pkg/types"
)

func TestBuilderRequiresHost(t *testing.T) {
	_, err := NewBuilder().Build()
	if _, ok := err.(types.ErrConfig); !ok {
		t.Fatalf("Expected a types.ErrConfig, got %#v", err)
	}
}

func TestBuilderHostSchemes(t *testing.T) {
	for _, host := range []string{"tcp://127.0.0.1:2376", "unix:///var/run/docker.sock"} {
		cfg, err := NewBuilder().WithHost(host).Build()
		if err != nil {
			t.Fatal(err)
		}
		assertEq(cfg.Host.String(), host, t)
	}

	for _, host := range []string{"http://127.0.0.1:2375", "ssh://example.com", "/var/run/docker.sock"} {
		_, err := NewBuilder().WithHost(host).Build()
		if _, ok := err.(types.ErrConfig); !ok {
			t.Fatalf("Expected a types.ErrConfig for %q, got %#v", host, err)
		}
	}
}

func TestBuilderTLSVerifyParsing(t *testing.T) {
	certDir := t.TempDir()

	cases := map[string]bool{
		"true":   true,
		"TRUE":   true,
		" true ": true,
		"1":      true,
		"0":      false,
		"":       false,
		"false":  false,
		"yes":    false,
	}
	for raw, verify := range cases {
		cfg, err := NewBuilder().
			WithHost("tcp://127.0.0.1:2376").
			WithTLSVerify(raw).
			WithCertPath(certDir).
			Build()
		if err != nil {
			t.Fatal(err)
		}
		assert(cfg.Trust != nil, verify, t)
	}
}

func TestBuilderTLSVerifyNeedsValidCertDir(t *testing.T) {
	certFile := filepath.Join(t.TempDir(), "certs")
	err := os.WriteFile(certFile, []byte("not a directory"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	for _, certPath := range []string{"", "/nonexistent/certs", certFile} {
		_, err := NewBuilder().
			WithHost("tcp://127.0.0.1:2376").
			WithTLSVerify("1").
			WithCertPath(certPath).
			Build()
		if _, ok := err.(types.ErrConfig); !ok {
			t.Fatalf("Expected a types.ErrConfig for cert path %q, got %#v", certPath, err)
		}
	}
}

func TestBuilderTLSTrustContextLayout(t *testing.T) {
	certDir := t.TempDir()
	cfg, err := NewBuilder().
		WithHost("tcp://127.0.0.1:2376").
		WithTLSVerify("true").
		WithCertPath(certDir).
		Build()
	if err != nil {
		t.Fatal(err)
	}

	assertEq(cfg.Trust.Dir, certDir, t)
	assertEq(cfg.Trust.CAFile, filepath.Join(certDir, "ca.pem"), t)
	assertEq(cfg.Trust.CertFile, filepath.Join(certDir, "cert.pem"), t)
	assertEq(cfg.Trust.KeyFile, filepath.Join(certDir, "key.pem"), t)
}

func TestBuilderCustomTrustContextWins(t *testing.T) {
	custom := NewTrustContext("/srv/engine-certs")

	// the custom context overrides the cert-path derivation...
	cfg, err := NewBuilder().
		WithHost("tcp://127.0.0.1:2376").
		WithTLSVerify("true").
		WithCertPath(t.TempDir()).
		WithTrustContext(custom).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	assertEq(cfg.Trust, custom, t)

	// ...and is kept even with verification off
	cfg, err = NewBuilder().
		WithHost("tcp://127.0.0.1:2376").
		WithTrustContext(custom).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	assertEq(cfg.Trust, custom, t)
}
