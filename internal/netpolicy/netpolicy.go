// Package netpolicy carries the TLS settings of the selected server to the
// HTTP and Git collaborators.
//
// A Policy is a value handed to each collaborator. Nothing here touches the
// process environment: Git child processes receive the policy through the
// environment slice built by GitEnv.
package netpolicy

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/thoreinstein/gertty/internal/errors"
)

// Git environment variables understood by git's HTTP transport.
const (
	EnvGitSSLNoVerify = "GIT_SSL_NO_VERIFY"
	EnvGitSSLCAInfo   = "GIT_SSL_CAINFO"
)

// Policy describes how outbound connections verify the server.
type Policy struct {
	// VerifySSL enables certificate verification.
	VerifySSL bool `json:"verify_ssl" yaml:"verify-ssl"`

	// CABundle is the expanded path of a PEM bundle that replaces the
	// system roots. Empty means use the system roots.
	CABundle string `json:"ca_bundle,omitempty" yaml:"ca-bundle,omitempty"`
}

// Default verifies certificates against the system roots.
func Default() Policy {
	return Policy{VerifySSL: true}
}

// TLSConfig builds the client TLS configuration for the policy.
func (p Policy) TLSConfig() (*tls.Config, error) {
	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		//nolint:gosec // verification is disabled only when the user sets verify-ssl: false
		InsecureSkipVerify: !p.VerifySSL,
	}
	if p.CABundle == "" {
		return cfg, nil
	}

	pool, err := p.CertPool()
	if err != nil {
		return nil, err
	}
	cfg.RootCAs = pool
	return cfg, nil
}

// CertPool loads the CA bundle into a new pool.
func (p Policy) CertPool() (*x509.CertPool, error) {
	pem, err := os.ReadFile(p.CABundle)
	if err != nil {
		return nil, errors.Wrapf(err, "reading CA bundle %s", p.CABundle)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.Newf("CA bundle %s contains no PEM certificates", p.CABundle)
	}
	return pool, nil
}

// GitEnv returns the KEY=value entries to add to a git child process
// environment.
func (p Policy) GitEnv() []string {
	var env []string
	if !p.VerifySSL {
		env = append(env, EnvGitSSLNoVerify+"=true")
	}
	if p.CABundle != "" {
		env = append(env, EnvGitSSLCAInfo+"="+p.CABundle)
	}
	return env
}
