//go:build !tinygo

package qliic

import (
	"golang.org/x/crypto/acme/autocert"
)

// ServeTLS serves HTTPS for host with a certificate from Let's Encrypt.  It
// does not return unless the listener fails.
func (s *Server) ServeTLS(host string) error {
	return s.Serve(autocert.NewListener(host))
}
