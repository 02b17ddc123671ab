package cookiekit_test

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"cookiekit"
)

// newCtx parses a request off the wire, the way the server receives it.
func newCtx(t *testing.T, cookieHeaders ...string) *fasthttp.RequestCtx {
	t.Helper()
	var b strings.Builder
	b.WriteString("GET /logs HTTP/1.1\r\nHost: flume.live\r\n")
	for _, h := range cookieHeaders {
		b.WriteString("Cookie: " + h + "\r\n")
	}
	b.WriteString("\r\n")

	ctx := &fasthttp.RequestCtx{}
	require.NoError(t, ctx.Request.Read(bufio.NewReader(strings.NewReader(b.String()))))
	return ctx
}

func TestRequestCookie(t *testing.T) {
	t.Parallel()
	ctx := newCtx(t, `session_token=fd797261-5b801a482994; api_key="sumner@flume.live"`)

	v, ok := cookiekit.RequestCookie(ctx, "session_token")
	assert.True(t, ok)
	assert.Equal(t, "fd797261-5b801a482994", v)

	key, ok := cookiekit.APIKey(ctx)
	assert.True(t, ok)
	assert.Equal(t, "sumner@flume.live", key)

	_, ok = cookiekit.RequestCookie(ctx, "missing")
	assert.False(t, ok)
}

func TestRequestCookieMatchesGetValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		header string
		field  string
	}{
		{name: "stray empty name", header: "=value; a=1", field: "value"},
		{name: "stray empty name last", header: "a=1; =flag", field: "flag"},
		{name: "bare name", header: "x=1; flag", field: "flag"},
		{name: "whitespace inside quotes", header: `x=" a b "`, field: "x"},
		{name: "embedded equals", header: "token=abc=def", field: "token"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wantValue, wantOK := cookiekit.GetValue(tt.field, tt.header)
			got, ok := cookiekit.RequestCookie(newCtx(t, tt.header), tt.field)
			assert.Equal(t, wantOK, ok)
			assert.Equal(t, wantValue, got)
		})
	}
}

func TestRequestCookieMultipleHeaders(t *testing.T) {
	t.Parallel()
	ctx := newCtx(t, "a=1", "b=2; a=3")

	v, ok := cookiekit.RequestCookie(ctx, "b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	v, ok = cookiekit.RequestCookie(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestRequestCookieBuiltInCode(t *testing.T) {
	t.Parallel()
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.SetRequestURI("/logs")
	ctx.Request.Header.Set(fasthttp.HeaderCookie, "session=abc; api_key=k")

	v, ok := cookiekit.APIKey(ctx)
	assert.True(t, ok)
	assert.Equal(t, "k", v)
}

func TestAPIKeyWithoutCookieHeader(t *testing.T) {
	t.Parallel()
	_, ok := cookiekit.APIKey(newCtx(t))
	assert.False(t, ok)
}

func TestRequireCookie(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		headers    []string
		wantStatus int
		wantCalled bool
	}{
		{name: "present", headers: []string{"api_key=abc"}, wantStatus: fasthttp.StatusOK, wantCalled: true},
		{name: "present but empty", headers: []string{`api_key=""`}, wantStatus: fasthttp.StatusOK, wantCalled: true},
		{name: "absent", headers: []string{"other=1"}, wantStatus: fasthttp.StatusUnauthorized},
		{name: "stray value is not a name", headers: []string{"=api_key"}, wantStatus: fasthttp.StatusUnauthorized},
		{name: "no header", wantStatus: fasthttp.StatusUnauthorized},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			called := false
			h := cookiekit.RequireCookie(cookiekit.APIKeyCookie, func(ctx *fasthttp.RequestCtx) {
				called = true
				ctx.SetStatusCode(fasthttp.StatusOK)
			})
			ctx := newCtx(t, tt.headers...)
			h(ctx)
			assert.Equal(t, tt.wantCalled, called)
			assert.Equal(t, tt.wantStatus, ctx.Response.StatusCode())
		})
	}
}
