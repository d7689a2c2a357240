package uri

import (
	"fmt"
	"net/url"
	"strings"
)

type Pair struct {
	Key   string
	Value string
}

// Query keeps query parameters in the order they were written.
type Query []Pair

func ParseQuery(raw string) (Query, error) {
	var q Query
	for raw != "" {
		var part string
		part, raw, _ = strings.Cut(raw, "&")
		if part == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("%w: query key %q: %v", ErrMalformedURL, rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("%w: query value %q: %v", ErrMalformedURL, rawValue, err)
		}
		q = append(q, Pair{Key: key, Value: value})
	}
	return q, nil
}

// Get returns the first value stored for key.
func (q Query) Get(key string) (string, bool) {
	for _, p := range q {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

func (q Query) Values(key string) []string {
	var values []string
	for _, p := range q {
		if p.Key == key {
			values = append(values, p.Value)
		}
	}
	return values
}

func (q Query) Encode() string {
	var b strings.Builder
	for i, p := range q {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		if p.Value != "" {
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(p.Value))
		}
	}
	return b.String()
}
