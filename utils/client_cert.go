package utils

import (
	"crypto/tls"
	"fmt"
	"os"

	"golang.org/x/crypto/pkcs12"
)

// LoadClientCert reads a PKCS#12 bundle (.pfx/.p12) and returns a TLS client
// certificate for backends that require mutual TLS. The result plugs into
// visionbridge.Config.ClientCert.
func LoadClientCert(path, password string) (*tls.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read certificate bundle %s: %w", path, err)
	}
	key, cert, err := pkcs12.Decode(data, password)
	if err != nil {
		return nil, fmt.Errorf("decode pkcs12 bundle %s: %w", path, err)
	}
	return &tls.Certificate{
		Certificate: [][]byte{cert.Raw},
		PrivateKey:  key,
		Leaf:        cert,
	}, nil
}
