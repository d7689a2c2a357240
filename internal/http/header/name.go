package header

import (
	"net/textproto"
	"strings"
)

// Role tells which kind of message may carry a header.
type Role int

const (
	Unrestricted Role = iota
	RequestOnly
	ResponseOnly
)

func (r Role) String() string {
	switch r {
	case RequestOnly:
		return "request-only"
	case ResponseOnly:
		return "response-only"
	default:
		return "unrestricted"
	}
}

// Name is a header field name. The constants below are the registered
// spellings; anything else is a custom, unrestricted header.
type Name string

const (
	CacheControl       Name = "Cache-Control"
	Connection         Name = "Connection"
	ContentDisposition Name = "Content-Disposition"
	ContentEncoding    Name = "Content-Encoding"
	ContentLanguage    Name = "Content-Language"
	ContentLength      Name = "Content-Length"
	ContentLocation    Name = "Content-Location"
	ContentType        Name = "Content-Type"
	Date               Name = "Date"
	Expires            Name = "Expires"
	KeepAlive          Name = "Keep-Alive"
	LastModified       Name = "Last-Modified"
	Allow              Name = "Allow"
	Pragma             Name = "Pragma"
	Trailer            Name = "Trailer"
	TransferEncoding   Name = "Transfer-Encoding"
	Upgrade            Name = "Upgrade"
	Via                Name = "Via"
	Warning            Name = "Warning"
	XForwardedFor      Name = "X-Forwarded-For"
	XForwardedHost     Name = "X-Forwarded-Host"
	XForwardedProto    Name = "X-Forwarded-Proto"
	XRequestID         Name = "X-Request-Id"

	Accept             Name = "Accept"
	AcceptCharset      Name = "Accept-Charset"
	AcceptEncoding     Name = "Accept-Encoding"
	AcceptLanguage     Name = "Accept-Language"
	Authorization      Name = "Authorization"
	Cookie             Name = "Cookie"
	Expect             Name = "Expect"
	Forwarded          Name = "Forwarded"
	From               Name = "From"
	Host               Name = "Host"
	IfMatch            Name = "If-Match"
	IfModifiedSince    Name = "If-Modified-Since"
	IfNoneMatch        Name = "If-None-Match"
	IfRange            Name = "If-Range"
	IfUnmodifiedSince  Name = "If-Unmodified-Since"
	MaxForwards        Name = "Max-Forwards"
	Origin             Name = "Origin"
	ProxyAuthorization Name = "Proxy-Authorization"
	Range              Name = "Range"
	Referer            Name = "Referer"
	TE                 Name = "TE"
	UserAgent          Name = "User-Agent"

	AcceptRanges                  Name = "Accept-Ranges"
	AccessControlAllowCredentials Name = "Access-Control-Allow-Credentials"
	AccessControlAllowHeaders     Name = "Access-Control-Allow-Headers"
	AccessControlAllowMethods     Name = "Access-Control-Allow-Methods"
	AccessControlAllowOrigin      Name = "Access-Control-Allow-Origin"
	AccessControlExposeHeaders    Name = "Access-Control-Expose-Headers"
	AccessControlMaxAge           Name = "Access-Control-Max-Age"
	Age                           Name = "Age"
	ETag                          Name = "ETag"
	Location                      Name = "Location"
	ProxyAuthenticate             Name = "Proxy-Authenticate"
	RetryAfter                    Name = "Retry-After"
	Server                        Name = "Server"
	SetCookie                     Name = "Set-Cookie"
	StrictTransportSecurity       Name = "Strict-Transport-Security"
	Vary                          Name = "Vary"
	WWWAuthenticate               Name = "WWW-Authenticate"
)

var roles = map[Name]Role{
	CacheControl:       Unrestricted,
	Connection:         Unrestricted,
	ContentDisposition: Unrestricted,
	ContentEncoding:    Unrestricted,
	ContentLanguage:    Unrestricted,
	ContentLength:      Unrestricted,
	ContentLocation:    Unrestricted,
	ContentType:        Unrestricted,
	Date:               Unrestricted,
	Expires:            Unrestricted,
	KeepAlive:          Unrestricted,
	LastModified:       Unrestricted,
	Allow:              Unrestricted,
	Pragma:             Unrestricted,
	Trailer:            Unrestricted,
	TransferEncoding:   Unrestricted,
	Upgrade:            Unrestricted,
	Via:                Unrestricted,
	Warning:            Unrestricted,
	XForwardedFor:      Unrestricted,
	XForwardedHost:     Unrestricted,
	XForwardedProto:    Unrestricted,
	XRequestID:         Unrestricted,

	Accept:             RequestOnly,
	AcceptCharset:      RequestOnly,
	AcceptEncoding:     RequestOnly,
	AcceptLanguage:     RequestOnly,
	Authorization:      RequestOnly,
	Cookie:             RequestOnly,
	Expect:             RequestOnly,
	Forwarded:          RequestOnly,
	From:               RequestOnly,
	Host:               RequestOnly,
	IfMatch:            RequestOnly,
	IfModifiedSince:    RequestOnly,
	IfNoneMatch:        RequestOnly,
	IfRange:            RequestOnly,
	IfUnmodifiedSince:  RequestOnly,
	MaxForwards:        RequestOnly,
	Origin:             RequestOnly,
	ProxyAuthorization: RequestOnly,
	Range:              RequestOnly,
	Referer:            RequestOnly,
	TE:                 RequestOnly,
	UserAgent:          RequestOnly,

	AcceptRanges:                  ResponseOnly,
	AccessControlAllowCredentials: ResponseOnly,
	AccessControlAllowHeaders:     ResponseOnly,
	AccessControlAllowMethods:     ResponseOnly,
	AccessControlAllowOrigin:      ResponseOnly,
	AccessControlExposeHeaders:    ResponseOnly,
	AccessControlMaxAge:           ResponseOnly,
	Age:                           ResponseOnly,
	ETag:                          ResponseOnly,
	Location:                      ResponseOnly,
	ProxyAuthenticate:             ResponseOnly,
	RetryAfter:                    ResponseOnly,
	Server:                        ResponseOnly,
	SetCookie:                     ResponseOnly,
	StrictTransportSecurity:       ResponseOnly,
	Vary:                          ResponseOnly,
	WWWAuthenticate:               ResponseOnly,
}

var known = func() map[string]Name {
	m := make(map[string]Name, len(roles))
	for name := range roles {
		m[strings.ToLower(string(name))] = name
	}
	return m
}()

// Canonical returns the registered spelling of raw, or its MIME canonical
// form when raw is not a registered header.
func Canonical(raw string) Name {
	if name, ok := known[strings.ToLower(raw)]; ok {
		return name
	}
	return Name(textproto.CanonicalMIMEHeaderKey(raw))
}

func (n Name) Role() Role {
	return roles[Canonical(string(n))]
}

func (n Name) IsOnlyRequest() bool {
	return n.Role() == RequestOnly
}

func (n Name) IsOnlyResponse() bool {
	return n.Role() == ResponseOnly
}

func (n Name) String() string {
	return string(n)
}
