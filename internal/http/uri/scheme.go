package uri

import (
	"fmt"
	"strings"
)

type Scheme string

const (
	SchemeNone   Scheme = ""
	SchemeHTTPS  Scheme = "https"
	SchemeHTTP   Scheme = "http"
	SchemeFTP    Scheme = "ftp"
	SchemeFile   Scheme = "file"
	SchemeMailto Scheme = "mailto"
	SchemeSSH    Scheme = "ssh"
)

func ParseScheme(raw string) (Scheme, error) {
	s := Scheme(strings.ToLower(raw))
	switch s {
	case SchemeNone, SchemeHTTPS, SchemeHTTP, SchemeFTP, SchemeFile, SchemeMailto, SchemeSSH:
		return s, nil
	}
	return SchemeNone, fmt.Errorf("%w: unsupported scheme %q", ErrMalformedURL, raw)
}

// DefaultPort returns the well-known port of s, or 0 when it has none.
func (s Scheme) DefaultPort() int {
	switch s {
	case SchemeHTTP:
		return 80
	case SchemeHTTPS:
		return 443
	case SchemeFTP:
		return 21
	case SchemeSSH:
		return 22
	default:
		return 0
	}
}

// hierarchical schemes always carry an authority section, even an empty one.
func (s Scheme) hierarchical() bool {
	switch s {
	case SchemeHTTP, SchemeHTTPS, SchemeFTP, SchemeFile, SchemeSSH:
		return true
	}
	return false
}
