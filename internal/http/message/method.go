package message

import (
	"fmt"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// Method is a request method: one of the standard verbs or a custom token.
type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodConnect Method = "CONNECT"
)

// ParseMethod upper-cases standard verbs and keeps custom verbs verbatim.
func ParseMethod(raw string) (Method, error) {
	if m := Method(strings.ToUpper(raw)); m.IsStandard() {
		return m, nil
	}
	m := Method(raw)
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m Method) IsStandard() bool {
	switch m {
	case MethodGet, MethodHead, MethodPost, MethodPut, MethodPatch,
		MethodDelete, MethodOptions, MethodTrace, MethodConnect:
		return true
	}
	return false
}

func (m Method) Validate() error {
	if !httpguts.ValidHeaderFieldName(string(m)) {
		return fmt.Errorf("%w: %q", ErrInvalidMethod, string(m))
	}
	return nil
}

// CanHaveBody reports whether a request with this method may carry a body.
// Custom methods may.
func (m Method) CanHaveBody() bool {
	switch m {
	case MethodGet, MethodHead, MethodTrace, MethodConnect:
		return false
	}
	return true
}

func (m Method) String() string {
	return string(m)
}
