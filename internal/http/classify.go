package http

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"os"
	"strings"

	"github.com/pinmeto-community/pinmeto-client/pkg/pinmeto"
)

// ClassifyError maps a transport failure to a *pinmeto.TransportError. The
// original error stays reachable through Unwrap for diagnostics. Anything
// that matches no known class maps to TransportOther.
func ClassifyError(targetURL string, err error) error {
	return &pinmeto.TransportError{
		Kind: classifyKind(err),
		URL:  targetURL,
		Err:  err,
	}
}

func classifyKind(err error) pinmeto.TransportErrorKind {
	if isCertificateError(err) {
		return pinmeto.TransportCertificateError
	}

	// net/http reports the redirect-loop guard only through the error text.
	if strings.Contains(err.Error(), "stopped after") && strings.Contains(err.Error(), "redirects") {
		return pinmeto.TransportTooManyRedirects
	}

	if isTimeoutError(err) {
		return pinmeto.TransportTimeout
	}

	if isConnectionError(err) {
		return pinmeto.TransportConnectionFailed
	}

	return pinmeto.TransportOther
}

func isCertificateError(err error) bool {
	var (
		certVerifyErr   *tls.CertificateVerificationError
		unknownAuthErr  x509.UnknownAuthorityError
		hostnameErr     x509.HostnameError
		certInvalidErr  x509.CertificateInvalidError
		tlsRecordHeader tls.RecordHeaderError
	)

	return errors.As(err, &certVerifyErr) ||
		errors.As(err, &unknownAuthErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &certInvalidErr) ||
		errors.As(err, &tlsRecordHeader)
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectionError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr) && opErr.Op == "dial"
}
