package cookiekit

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/valyala/fasthttp"
)

// APIKeyCookie is the cookie the web UI stores its API key in after login.
const APIKeyCookie = "api_key"

// RequestCookie reads a field from the Cookie header of an incoming request.
// The header text is taken as received on the wire. Requests built in code
// have no raw headers, so those fall back to fasthttp's normalized header.
func RequestCookie(ctx *fasthttp.RequestCtx, name string) (string, bool) {
	line, ok := rawCookieHeader(ctx.Request.Header.RawHeaders())
	if !ok {
		line = string(ctx.Request.Header.Peek(fasthttp.HeaderCookie))
	}
	return GetValue(name, line)
}

// rawCookieHeader joins every Cookie line of a raw header block with "; ".
func rawCookieHeader(raw []byte) (string, bool) {
	var lines []string
	var line []byte
	for len(raw) > 0 {
		line, raw, _ = bytes.Cut(raw, []byte("\n"))
		k, v, ok := bytes.Cut(line, []byte(":"))
		if !ok || !bytes.EqualFold(bytes.TrimSpace(k), []byte(fasthttp.HeaderCookie)) {
			continue
		}
		lines = append(lines, string(bytes.TrimSpace(v)))
	}
	return strings.Join(lines, "; "), len(lines) > 0
}

func APIKey(ctx *fasthttp.RequestCtx) (string, bool) {
	return RequestCookie(ctx, APIKeyCookie)
}

// RequireCookie answers 401 when the request carries no cookie called name.
func RequireCookie(name string, next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if _, ok := RequestCookie(ctx, name); !ok {
			log().Debug("missing cookie",
				slog.String("cookie", name),
				slog.String("path", string(ctx.Path())),
			)
			ctx.Error(fasthttp.StatusMessage(fasthttp.StatusUnauthorized), fasthttp.StatusUnauthorized)
			return
		}
		next(ctx)
	}
}
