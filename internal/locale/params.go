// Package locale resolves the active language and enabled content modules
// from request parameters, and rewrites content paths between the base
// locale and localized copies.
package locale

import (
	"net/url"
	"strings"
)

// Param is a single key/value pair from a query string.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters. Unlike url.Values it keeps
// the order in which parameters appeared, which decides module load order.
type Params struct {
	pairs []Param
}

// ParseParams parses a raw query string ("a=1&b=2", optionally prefixed
// with "?") into ordered params. Malformed escapes such as "100%" are kept
// as written rather than rejected.
func ParseParams(rawQuery string) Params {
	var p Params
	rawQuery = strings.TrimPrefix(rawQuery, "?")
	if rawQuery == "" {
		return p
	}

	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(part, "=")
		p.pairs = append(p.pairs, Param{Key: unescape(rawKey), Value: unescape(rawValue)})
	}
	return p
}

// unescape decodes "+" and valid %XX sequences, leaving any other "%"
// untouched.
func unescape(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}

// All returns a copy of every pair in query order.
func (p Params) All() []Param {
	out := make([]Param, len(p.pairs))
	copy(out, p.pairs)
	return out
}

// Get returns the first value for key, or "" if the key is absent.
func (p Params) Get(key string) string {
	v, _ := p.Lookup(key)
	return v
}

// Lookup returns the first value for key and whether it was present.
func (p Params) Lookup(key string) (string, bool) {
	for _, pair := range p.pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}
	return "", false
}

// Set replaces the first occurrence of key and drops any later ones. An
// absent key is appended.
func (p Params) Set(key, value string) Params {
	out := Params{pairs: make([]Param, 0, len(p.pairs)+1)}
	found := false
	for _, pair := range p.pairs {
		if pair.Key != key {
			out.pairs = append(out.pairs, pair)
			continue
		}
		if !found {
			out.pairs = append(out.pairs, Param{Key: key, Value: value})
			found = true
		}
	}
	if !found {
		out.pairs = append(out.pairs, Param{Key: key, Value: value})
	}
	return out
}

// Del removes every occurrence of key.
func (p Params) Del(key string) Params {
	out := Params{pairs: make([]Param, 0, len(p.pairs))}
	for _, pair := range p.pairs {
		if pair.Key != key {
			out.pairs = append(out.pairs, pair)
		}
	}
	return out
}

// Len returns the number of pairs.
func (p Params) Len() int {
	return len(p.pairs)
}

// Encode serializes the params back into a query string, keeping order.
func (p Params) Encode() string {
	var b strings.Builder
	for i, pair := range p.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(pair.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pair.Value))
	}
	return b.String()
}

// String implements fmt.Stringer.
func (p Params) String() string {
	return p.Encode()
}
