package uri

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

var (
	ErrMalformedURL = errors.New("malformed url")
	ErrInvalidPort  = errors.New("invalid port")
)

const maxPort = 65535

// URL is an immutable absolute or relative URL. The With* methods return
// modified copies and never touch the receiver.
type URL struct {
	scheme      Scheme
	user        string
	password    string
	hasPassword bool
	host        string
	port        int
	hasPort     bool
	path        string
	query       Query
	fragment    string
}

// Parse decomposes raw into scheme, authority, path, query and fragment.
func Parse(raw string) (*URL, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}

	scheme, err := ParseScheme(parsed.Scheme)
	if err != nil {
		return nil, err
	}

	host, err := normalizeHost(parsed.Hostname())
	if err != nil {
		return nil, err
	}

	u := &URL{
		scheme:   scheme,
		host:     host,
		path:     parsed.EscapedPath(),
		fragment: parsed.EscapedFragment(),
	}

	if parsed.Opaque != "" {
		u.path = parsed.Opaque
	}

	if parsed.User != nil {
		u.user = parsed.User.Username()
		u.password, u.hasPassword = parsed.User.Password()
	}

	if rawPort := parsed.Port(); rawPort != "" {
		port, err := parsePort(rawPort)
		if err != nil {
			return nil, err
		}
		u.port, u.hasPort = port, true
	}

	if u.query, err = ParseQuery(parsed.RawQuery); err != nil {
		return nil, err
	}

	return u, nil
}

func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(raw)
	if err != nil || port < 0 || port > maxPort {
		return 0, fmt.Errorf("%w: %q is outside 0-%d", ErrInvalidPort, raw, maxPort)
	}
	return port, nil
}

func normalizeHost(host string) (string, error) {
	if host == "" {
		return "", nil
	}
	if ip := net.ParseIP(host); ip != nil {
		return strings.ToLower(host), nil
	}
	if isASCII(host) {
		return strings.ToLower(host), nil
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("%w: host %q: %v", ErrMalformedURL, host, err)
	}
	return ascii, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func escapePath(p string) string {
	unescaped, err := url.PathUnescape(p)
	if err != nil {
		return (&url.URL{Path: p}).EscapedPath()
	}
	return (&url.URL{Path: unescaped, RawPath: p}).EscapedPath()
}

func escapeFragment(f string) string {
	unescaped, err := url.PathUnescape(f)
	if err != nil {
		return (&url.URL{Fragment: f}).EscapedFragment()
	}
	return (&url.URL{Fragment: unescaped, RawFragment: f}).EscapedFragment()
}

func (u *URL) Scheme() Scheme   { return u.scheme }
func (u *URL) User() string     { return u.user }
func (u *URL) Host() string     { return u.host }
func (u *URL) Path() string     { return u.path }
func (u *URL) Fragment() string { return u.fragment }

func (u *URL) Password() (string, bool) {
	return u.password, u.hasPassword
}

// Port returns the explicit port, if the URL carries one.
func (u *URL) Port() (int, bool) {
	return u.port, u.hasPort
}

func (u *URL) Query() Query {
	return slices.Clone(u.query)
}

// HostWithPort returns the host, bracketed when it is an IPv6 literal, with
// ":port" appended when the port differs from the scheme's default.
func (u *URL) HostWithPort() string {
	if u.host == "" {
		return ""
	}
	if u.hasPort && u.port != u.scheme.DefaultPort() {
		return net.JoinHostPort(u.host, strconv.Itoa(u.port))
	}
	if strings.Contains(u.host, ":") {
		return "[" + u.host + "]"
	}
	return u.host
}

func (u *URL) authority() string {
	var b strings.Builder

	if u.user != "" || u.hasPassword {
		var info *url.Userinfo
		if u.hasPassword {
			info = url.UserPassword(u.user, u.password)
		} else {
			info = url.User(u.user)
		}
		b.WriteString(info.String())
		b.WriteByte('@')
	}

	if strings.Contains(u.host, ":") {
		b.WriteString("[" + strings.ReplaceAll(u.host, "%", "%25") + "]")
	} else {
		b.WriteString(u.host)
	}

	if u.hasPort {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(u.port))
	}

	return b.String()
}

func (u *URL) String() string {
	var b strings.Builder

	if u.scheme != SchemeNone {
		b.WriteString(string(u.scheme))
		b.WriteByte(':')
	}

	authority := u.authority()
	if authority != "" || (u.scheme.hierarchical() && strings.HasPrefix(u.path, "/")) {
		b.WriteString("//")
		b.WriteString(authority)
		if u.path != "" && !strings.HasPrefix(u.path, "/") {
			b.WriteByte('/')
		}
	}
	b.WriteString(u.path)

	if len(u.query) > 0 {
		b.WriteByte('?')
		b.WriteString(u.query.Encode())
	}

	if u.fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}

	return b.String()
}

func (u *URL) clone() *URL {
	c := *u
	c.query = slices.Clone(u.query)
	return &c
}

func (u *URL) WithScheme(scheme Scheme) (*URL, error) {
	s, err := ParseScheme(string(scheme))
	if err != nil {
		return nil, err
	}
	c := u.clone()
	c.scheme = s
	return c, nil
}

// WithUserInfo replaces the userinfo; an empty password drops it.
func (u *URL) WithUserInfo(user, password string) *URL {
	c := u.clone()
	c.user = user
	c.password, c.hasPassword = password, password != ""
	return c
}

func (u *URL) WithHost(host string) (*URL, error) {
	h, err := normalizeHost(strings.Trim(host, "[]"))
	if err != nil {
		return nil, err
	}
	c := u.clone()
	c.host = h
	return c, nil
}

func (u *URL) WithPort(port int) (*URL, error) {
	if port < 0 || port > maxPort {
		return nil, fmt.Errorf("%w: %d is outside 0-%d", ErrInvalidPort, port, maxPort)
	}
	c := u.clone()
	c.port, c.hasPort = port, true
	return c, nil
}

func (u *URL) WithoutPort() *URL {
	c := u.clone()
	c.port, c.hasPort = 0, false
	return c
}

// WithPath stores path percent-encoded. Already encoded input is kept as is.
func (u *URL) WithPath(path string) *URL {
	c := u.clone()
	c.path = escapePath(path)
	return c
}

func (u *URL) WithQuery(q Query) *URL {
	c := u.clone()
	c.query = slices.Clone(q)
	return c
}

func (u *URL) WithFragment(fragment string) *URL {
	c := u.clone()
	c.fragment = escapeFragment(fragment)
	return c
}

// FromTarget resolves a request target against an authority. Absolute
// targets are returned as parsed; origin-form targets ("/a?b") get scheme
// and authority ("host[:port]") filled in.
func FromTarget(scheme Scheme, authority, target string) (*URL, error) {
	u, err := Parse(target)
	if err != nil {
		return nil, err
	}
	if u.host != "" || authority == "" {
		return u, nil
	}

	host, port := authority, ""
	if h, p, splitErr := net.SplitHostPort(authority); splitErr == nil {
		host, port = h, p
	}

	if u, err = u.WithScheme(scheme); err != nil {
		return nil, err
	}
	if u, err = u.WithHost(host); err != nil {
		return nil, err
	}
	if port != "" {
		n, err := parsePort(port)
		if err != nil {
			return nil, err
		}
		return u.WithPort(n)
	}
	return u, nil
}
