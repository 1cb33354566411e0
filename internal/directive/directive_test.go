package directive

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretStatus(t *testing.T) {
	for _, code := range []int{100, 200, 201, 204, 404, 500, 599, 999} {
		body := []byte(`{"status":` + strconv.Itoa(code) + `}`)
		d, ok, err := Interpret(http.MethodPost, body, Options{})
		require.NoError(t, err, "code %d", code)
		require.True(t, ok, "code %d", code)
		assert.Equal(t, code, d.Code)
	}
}

func TestInterpretNoDirective(t *testing.T) {
	cases := map[string]struct {
		method string
		body   string
	}{
		"empty body":     {http.MethodPost, ""},
		"no status":      {http.MethodPost, `{"other":1}`},
		"array":          {http.MethodPost, `[{"status":201}]`},
		"scalar":         {http.MethodPost, `42`},
		"nested status":  {http.MethodPost, `{"data":{"status":201}}`},
		"not a post":     {http.MethodPut, `{"status":201}`},
		"get with junk":  {http.MethodGet, `not json`},
		"whitespace obj": {http.MethodPost, " {} \n"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, ok, err := Interpret(tc.method, []byte(tc.body), Options{})
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestInterpretUnknownFieldsIgnored(t *testing.T) {
	d, ok, err := Interpret(http.MethodPost, []byte(`{"note":"x","status":418,"tags":[1,2]}`), Options{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 418, d.Code)
}

func TestInterpretParseError(t *testing.T) {
	for _, body := range []string{"invalid json", `{"status":`, `{"status":201,}`, `{'status':201}`} {
		_, _, err := Interpret(http.MethodPost, []byte(body), Options{})
		var pe *ParseError
		assert.True(t, errors.As(err, &pe), "body %q: %v", body, err)
	}
}

func TestInterpretRejectEmptyBody(t *testing.T) {
	_, ok, err := Interpret(http.MethodPost, nil, Options{RejectEmptyBody: true})
	assert.False(t, ok)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "empty body", pe.Reason)
}

func TestInterpretInvalidStatus(t *testing.T) {
	for _, body := range []string{
		`{"status":"201"}`,
		`{"status":null}`,
		`{"status":201.5}`,
		`{"status":2e2}`,
		`{"status":99}`,
		`{"status":1000}`,
		`{"status":-1}`,
	} {
		_, ok, err := Interpret(http.MethodPost, []byte(body), Options{})
		assert.False(t, ok, body)
		assert.ErrorIs(t, err, ErrInvalidStatus, body)
	}
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := NewContext(context.Background(), StatusDirective{Code: 202})
	d, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, 202, d.Code)
}

func TestInterpretDuplicateStatusLastWins(t *testing.T) {
	d, ok, err := Interpret(http.MethodPost, []byte(`{"status":201,"status":404}`), Options{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 404, d.Code)

	_, _, err = Interpret(http.MethodPost, []byte(`{"status":201,"status":"x"}`), Options{})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
