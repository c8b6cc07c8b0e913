package tui

import (
	"context"
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/studiowebux/reqform/internal/form"
)

// One-line messages for the error line
const (
	msgInFlight      = "Request already in flight - wait for the response"
	msgCancelled     = "Request cancelled"
	msgTimeout       = "Request timeout - check the URL or raise --timeout (default: 30s)"
	msgConnTimeout   = "Connection timeout - server took too long to respond"
	msgDNS           = "DNS resolution failed - verify the hostname"
	msgRefused       = "Connection refused - check the server is running and the port is correct"
	msgReset         = "Connection reset by server"
	msgUnreachable   = "Network unreachable - check network connection and firewall settings"
	msgHostDown      = "Host unreachable - check the server is online"
	msgRedirects     = "Too many redirects - check server configuration or URL"
	msgInvalidURL    = "Invalid URL - use http:// or https:// followed by a host"
	msgMethod        = "Unsupported method - cycle the method field with Enter"
	msgEOF           = "Connection closed unexpectedly"
	msgMalformed     = "Malformed HTTP response"
	msgUnknownCA     = "TLS certificate is not trusted - pass --ca-file or --insecure"
	msgCertExpired   = "TLS certificate has expired"
	msgHostMismatch  = "TLS hostname mismatch - certificate doesn't match the requested host"
	msgHandshake     = "TLS handshake failed"
	msgClipboard     = "Clipboard unavailable"
	failedPrefix     = "Request failed: "
	tlsGenericPrefix = "TLS error: "
)

// categorizeError turns a request error into a user-facing line. It
// unwraps to the root cause before falling back to string matching.
func categorizeError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, form.ErrInFlight) {
		return msgInFlight
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return msgTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if msg := categorizeNetError(opErr); msg != "" {
			return msg
		}
	}

	var unknownCA x509.UnknownAuthorityError
	if errors.As(err, &unknownCA) {
		return msgUnknownCA
	}
	var invalidCert x509.CertificateInvalidError
	if errors.As(err, &invalidCert) {
		if invalidCert.Reason == x509.Expired {
			return msgCertExpired
		}
		return tlsGenericPrefix + invalidCert.Error()
	}
	var hostErr x509.HostnameError
	if errors.As(err, &hostErr) {
		return msgHostMismatch
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return msgTimeout
	}
	if errors.Is(err, context.Canceled) {
		return msgCancelled
	}

	return categorizeMessage(err.Error())
}

// categorizeNetError maps syscall errors carried by a net.OpError. It
// returns "" when the error needs string matching instead.
func categorizeNetError(e *net.OpError) string {
	if e.Timeout() {
		return msgConnTimeout
	}

	var errno syscall.Errno
	if !errors.As(e.Err, &errno) {
		return ""
	}
	switch errno {
	case syscall.ECONNREFUSED:
		return msgRefused
	case syscall.ECONNRESET:
		return msgReset
	case syscall.ENETUNREACH:
		return msgUnreachable
	case syscall.EHOSTUNREACH:
		return msgHostDown
	}
	return ""
}

// categorizeMessage matches well-known error texts
func categorizeMessage(errStr string) string {
	if errStr == "" {
		return ""
	}
	lower := strings.ToLower(errStr)
	has := func(subs ...string) bool {
		for _, s := range subs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}

	switch {
	case has("context canceled", "context cancelled"):
		return msgCancelled
	case has("deadline exceeded"):
		return msgTimeout
	case has("no such host", "dial tcp: lookup"):
		return msgDNS
	case has("connection refused"):
		return msgRefused
	case has("connection reset"):
		return msgReset
	case has("network is unreachable", "no route to host"):
		return msgUnreachable
	case has("tls", "x509", "certificate"):
		return categorizeTLSMessage(lower, errStr)
	case has("stopped after") && has("redirect"):
		return msgRedirects
	case has("unsupported method"):
		return msgMethod
	case has("invalid url", "unsupported protocol", "missing protocol scheme", "invalid port", "no host in request"):
		return msgInvalidURL
	case has("clipboard"):
		return msgClipboard + ": " + errStr
	case has("eof"):
		return msgEOF
	case has("timeout", "timed out"):
		return msgConnTimeout
	case has("malformed http"):
		return msgMalformed
	}

	return failedPrefix + errStr
}

func categorizeTLSMessage(lower, original string) string {
	switch {
	case strings.Contains(lower, "unknown authority"), strings.Contains(lower, "not trusted"):
		return msgUnknownCA
	case strings.Contains(lower, "expired"):
		return msgCertExpired
	case strings.Contains(lower, "certificate is valid for"), strings.Contains(lower, "doesn't match"):
		return msgHostMismatch
	case strings.Contains(lower, "handshake"):
		return msgHandshake
	}
	return tlsGenericPrefix + original
}
