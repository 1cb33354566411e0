// Package directive extracts the client-requested response status from a
// request body and carries it through the request context.
package directive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
)

// StatusDirective is the response status a client asked for.
type StatusDirective struct {
	Code int `validate:"gte=100,lte=999"`
}

// ParseError reports a body that is not valid JSON.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "directive: invalid JSON: " + e.Reason }

// ErrInvalidStatus is returned when the status field is present but is not
// an integer that can be written as an HTTP status code.
var ErrInvalidStatus = errors.New("directive: invalid status")

// Options tune Interpret.
type Options struct {
	// RejectEmptyBody makes an empty POST body a ParseError instead of
	// "no directive".
	RejectEmptyBody bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Interpret returns the directive carried by a POST body. ok is false when
// there is none: non-POST methods, an empty body (unless rejected by opts),
// JSON that is not an object, or an object without a status field.
func Interpret(method string, body []byte, opts Options) (d StatusDirective, ok bool, err error) {
	if method != http.MethodPost {
		return StatusDirective{}, false, nil
	}
	if len(body) == 0 {
		if opts.RejectEmptyBody {
			return StatusDirective{}, false, &ParseError{Reason: "empty body"}
		}
		return StatusDirective{}, false, nil
	}
	if !gjson.ValidBytes(body) {
		return StatusDirective{}, false, &ParseError{Reason: "malformed document"}
	}

	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return StatusDirective{}, false, nil
	}
	field := lastMember(doc, "status")
	if !field.Exists() {
		return StatusDirective{}, false, nil
	}
	if field.Type != gjson.Number {
		return StatusDirective{}, false, fmt.Errorf("%w: %s is not a number", ErrInvalidStatus, field.Raw)
	}
	// Raw keeps "201.0" and "2e2" apart from integer literals.
	code, convErr := strconv.Atoi(field.Raw)
	if convErr != nil {
		return StatusDirective{}, false, fmt.Errorf("%w: %s is not an integer", ErrInvalidStatus, field.Raw)
	}
	d = StatusDirective{Code: code}
	if err := validate.Struct(d); err != nil {
		return StatusDirective{}, false, fmt.Errorf("%w: %d is out of range", ErrInvalidStatus, code)
	}
	return d, true, nil
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying d.
func NewContext(ctx context.Context, d StatusDirective) context.Context {
	return context.WithValue(ctx, ctxKey{}, d)
}

// FromContext returns the directive stored by NewContext.
func FromContext(ctx context.Context) (StatusDirective, bool) {
	d, ok := ctx.Value(ctxKey{}).(StatusDirective)
	return d, ok
}

// lastMember returns the value of the last key named name; gjson's Get stops
// at the first one.
func lastMember(obj gjson.Result, name string) gjson.Result {
	var out gjson.Result
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == name {
			out = v
		}
		return true
	})
	return out
}
