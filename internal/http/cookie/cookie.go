package cookie

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/http/httpguts"
)

var (
	ErrMalformedCookie   = errors.New("malformed cookie")
	ErrMissingCookieName = errors.New("cookie must have a name")
	ErrInvalidCookieName = errors.New("invalid cookie name")
)

// ExpiresFormat is the fixed wire format of the Expires attribute.
const ExpiresFormat = "Mon, 02-Jan-2006 15:04:05 GMT"

var expiresLayouts = []string{
	ExpiresFormat,
	time.RFC1123,
	"Mon, 02 Jan 2006 15:04:05 GMT",
	"Monday, 02-Jan-06 15:04:05 GMT",
	time.ANSIC,
}

type SameSite string

const (
	SameSiteDefault SameSite = ""
	SameSiteStrict  SameSite = "Strict"
	SameSiteLax     SameSite = "Lax"
	SameSiteNone    SameSite = "None"
)

func ParseSameSite(raw string) (SameSite, error) {
	switch strings.ToLower(raw) {
	case "strict":
		return SameSiteStrict, nil
	case "lax":
		return SameSiteLax, nil
	case "none":
		return SameSiteNone, nil
	}
	return SameSiteDefault, fmt.Errorf("%w: unknown SameSite %q", ErrMalformedCookie, raw)
}

// Cookie is a single cookie. A zero Expires means no Expires attribute.
// MaxAge follows net/http: 0 means unset, negative means "Max-Age=0".
type Cookie struct {
	Name     string
	Value    string
	Expires  time.Time
	Path     string
	Domain   string
	Secure   bool
	HttpOnly bool
	SameSite SameSite
	MaxAge   int
}

func New(name, value string) (*Cookie, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Cookie{Name: name, Value: value}, nil
}

func validateName(name string) error {
	if name == "" {
		return ErrMissingCookieName
	}
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidCookieName, name)
	}
	return nil
}

// ParseClient splits a request Cookie header into its cookies, in order.
func ParseClient(s string) ([]*Cookie, error) {
	var cookies []*Cookie

	for _, segment := range strings.Split(s, ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		name, value, ok := strings.Cut(segment, "=")
		if !ok {
			return nil, fmt.Errorf("%w: segment %q has no '='", ErrMalformedCookie, segment)
		}

		c, err := New(strings.TrimSpace(name), strings.TrimSpace(value))
		if err != nil {
			return nil, err
		}
		cookies = append(cookies, c)
	}

	return cookies, nil
}

// ParseResponse reads a single Set-Cookie value. Unknown attributes are
// ignored; known attributes with unusable values are rejected.
func ParseResponse(s string) (*Cookie, error) {
	segments := strings.Split(s, ";")

	name, value, _ := strings.Cut(strings.TrimSpace(segments[0]), "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrMissingCookieName
	}

	c, err := New(name, strings.TrimSpace(value))
	if err != nil {
		return nil, err
	}

	for _, segment := range segments[1:] {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		key, val, _ := strings.Cut(segment, "=")
		val = strings.TrimSpace(val)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "expires":
			if c.Expires, err = parseExpires(val); err != nil {
				return nil, err
			}
		case "path":
			c.Path = val
		case "domain":
			c.Domain = val
		case "secure":
			c.Secure = true
		case "httponly":
			c.HttpOnly = true
		case "samesite":
			if c.SameSite, err = ParseSameSite(val); err != nil {
				return nil, err
			}
		case "max-age":
			if c.MaxAge, err = parseMaxAge(val); err != nil {
				return nil, err
			}
		}
	}

	return c, nil
}

func parseExpires(raw string) (time.Time, error) {
	for _, layout := range expiresLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad Expires %q", ErrMalformedCookie, raw)
}

func parseMaxAge(raw string) (int, error) {
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: bad Max-Age %q", ErrMalformedCookie, raw)
	}
	if secs <= 0 {
		return -1, nil
	}
	return secs, nil
}

// String renders the cookie as a Set-Cookie value.
func (c *Cookie) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(c.Value)

	if !c.Expires.IsZero() {
		b.WriteString("; Expires=")
		b.WriteString(c.Expires.UTC().Format(ExpiresFormat))
	}
	if c.Path != "" {
		b.WriteString("; Path=")
		b.WriteString(c.Path)
	}
	if c.Domain != "" {
		b.WriteString("; Domain=")
		b.WriteString(c.Domain)
	}
	if c.Secure {
		b.WriteString("; Secure")
	}
	if c.HttpOnly {
		b.WriteString("; HttpOnly")
	}
	if c.SameSite != SameSiteDefault {
		b.WriteString("; SameSite=")
		b.WriteString(string(c.SameSite))
	}
	if c.MaxAge > 0 {
		b.WriteString("; Max-Age=")
		b.WriteString(strconv.Itoa(c.MaxAge))
	} else if c.MaxAge < 0 {
		b.WriteString("; Max-Age=0")
	}

	return b.String()
}
