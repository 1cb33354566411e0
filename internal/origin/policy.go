// Package origin decides whether a request's Origin is allowed to read
// cross-origin responses and writes the matching response headers.
//
// Matching is exact string equality against a fixed allow-list. There is no
// wildcard or subdomain support, and the Origin value is never parsed, so
// "null", "data:", "file://..." and comma-joined lists only match if they
// were listed verbatim (NewPolicy refuses to list them).
package origin

import (
	"fmt"
	"net/http"
	"strings"
)

const (
	HeaderOrigin           = "Origin"
	HeaderAllowOrigin      = "Access-Control-Allow-Origin"
	HeaderAllowCredentials = "Access-Control-Allow-Credentials"
)

// Decision is the per-request outcome of Policy.Decide.
type Decision struct {
	Allowed bool
	// Origin is the matched allow-list entry; empty unless Allowed.
	Origin string
}

// Apply writes the decision into h. A rejected decision removes any
// allow-origin and allow-credentials values a handler may have set, so the
// headers are present iff the origin was allowed.
func (d Decision) Apply(h http.Header) {
	if !d.Allowed {
		h.Del(HeaderAllowOrigin)
		h.Del(HeaderAllowCredentials)
		return
	}
	h.Set(HeaderAllowOrigin, d.Origin)
	h.Set(HeaderAllowCredentials, "true")
}

// Policy is an immutable allow-list. It is safe for concurrent use.
type Policy struct {
	allowed map[string]struct{}
}

// NewPolicy builds a Policy from exact origins such as "http://localhost:3000".
func NewPolicy(origins []string) (*Policy, error) {
	if len(origins) == 0 {
		return nil, fmt.Errorf("origin: empty allow-list")
	}
	p := &Policy{allowed: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		if err := validateEntry(o); err != nil {
			return nil, err
		}
		p.allowed[o] = struct{}{}
	}
	return p, nil
}

// MustNewPolicy is NewPolicy for static lists; it panics on error.
func MustNewPolicy(origins ...string) *Policy {
	p, err := NewPolicy(origins)
	if err != nil {
		panic(err)
	}
	return p
}

func validateEntry(o string) error {
	switch {
	case o == "":
		return fmt.Errorf("origin: blank allow-list entry")
	case o == "*":
		return fmt.Errorf("origin: wildcard is not supported with credentials")
	case o == "null":
		return fmt.Errorf("origin: %q cannot be allow-listed", o)
	case strings.ContainsAny(o, ", \t"):
		return fmt.Errorf("origin: %q must be a single origin", o)
	case strings.HasSuffix(o, "/"):
		return fmt.Errorf("origin: %q must not have a trailing slash", o)
	case !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://"):
		return fmt.Errorf("origin: %q must use http or https", o)
	}
	return nil
}

// Decide looks up origin verbatim. An empty string stands for an absent header.
func (p *Policy) Decide(origin string) Decision {
	if origin == "" {
		return Decision{}
	}
	if _, ok := p.allowed[origin]; !ok {
		return Decision{}
	}
	return Decision{Allowed: true, Origin: origin}
}

// DecideRequest decides on r's Origin header. Requests carrying more than one
// Origin field line are treated as having none.
func (p *Policy) DecideRequest(r *http.Request) Decision {
	return p.Decide(FromRequest(r))
}

// FromRequest returns the single Origin value of r, or "" when the header is
// absent or repeated.
func FromRequest(r *http.Request) string {
	vs := r.Header.Values(HeaderOrigin)
	if len(vs) != 1 {
		return ""
	}
	return vs[0]
}
