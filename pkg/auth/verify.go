package auth

import (
	"crypto/x509"
	"time"
)

// parseCertificates turns a raw DER chain into x509 objects.
func parseCertificates(rawCertificates [][]byte) ([]*x509.Certificate, error) {
	if len(rawCertificates) == 0 {
		return nil, errNoCertificate
	}

	certs := make([]*x509.Certificate, 0, len(rawCertificates))
	for _, rawCert := range rawCertificates {
		cert, err := x509.ParseCertificate(rawCert)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	return certs, nil
}

// verifyChain verifies the leaf against the root of trust, treating the
// rest of the chain as intermediates. The chain is either fully trusted
// or rejected; there is no partial acceptance.
func verifyChain(certs []*x509.Certificate, roots *x509.CertPool, clientAuth bool) ([][]*x509.Certificate, error) {
	intermediateCAPool := x509.NewCertPool()
	for _, cert := range certs[1:] {
		intermediateCAPool.AddCert(cert)
	}
	opts := x509.VerifyOptions{
		Roots:         roots,
		CurrentTime:   time.Now(),
		Intermediates: intermediateCAPool,
	}
	if clientAuth {
		opts.KeyUsages = []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth}
	}
	return certs[0].Verify(opts)
}
