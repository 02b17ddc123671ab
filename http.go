package cookiekit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/dgrr/http2"
	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"
)

var (
	MethodGet     = fasthttp.MethodGet
	MethodHead    = fasthttp.MethodHead
	MethodPost    = fasthttp.MethodPost
	MethodPut     = fasthttp.MethodPut
	MethodPatch   = fasthttp.MethodPatch
	MethodDelete  = fasthttp.MethodDelete
	MethodConnect = fasthttp.MethodConnect
	MethodOptions = fasthttp.MethodOptions
	MethodTrace   = fasthttp.MethodTrace
)

type http struct {
	c           *fasthttp.Client
	h2c         *fasthttp.HostClient //http2
	usedH2      bool
	req         *fasthttp.Request
	resp        *fasthttp.Response
	uri         *fasthttp.URI
	qs          map[string][]string
	method      string
	contentType string
	timeout     time.Duration
	err         error
	respCookies map[string]string
}

// acquire takes the pooled request state shared by both transports.
func acquire(method string) *http {
	return &http{
		uri:     fasthttp.AcquireURI(),
		req:     fasthttp.AcquireRequest(),
		resp:    fasthttp.AcquireResponse(),
		method:  method,
		qs:      make(map[string][]string),
		timeout: currentConfig().Timeout,
	}
}

func new(method string) *http {
	h := acquire(method)
	h.c = &fasthttp.Client{}
	return h
}

func New(method string) *http {
	h := new(method)
	return h
}

// newH2
// @Param host api.xx.xx:443,only support 443(https)
func newH2(method, host string) (*http, error) {
	h2c := &fasthttp.HostClient{
		Addr: host,
	}
	if err := http2.ConfigureClient(h2c, http2.ClientOpts{}); err != nil {
		return nil, errors.Wrapf(ErrH2Config, "%s: %v", host, err)
	}
	h := acquire(method)
	h.h2c = h2c
	h.usedH2 = true
	return h, nil
}

func NewH2(method, host string) (*http, error) {
	return newH2(method, host)
}

// Err reports the first error recorded while building the request.
func (h *http) Err() error {
	return h.err
}

func (h *http) fail(err error) {
	if h.err == nil {
		h.err = err
	}
}

func (h *http) Url(rawUrl string) *http {
	err := h.uri.Parse(nil, []byte(rawUrl))
	if err != nil {
		log().Warn("invalid raw url", slog.String("url", rawUrl), slog.Any("error", err))
		h.fail(errors.Wrapf(ErrInvalidURL, "%q: %v", rawUrl, err))
	}
	return h
}

func (h *http) Scheme(scheme string) *http {
	h.uri.SetScheme(scheme)
	return h
}

func (h *http) Header(k, v string) *http {
	h.req.Header.Add(k, v)
	return h
}

func (h *http) SetCookie(k, v string) *http {
	h.req.Header.SetCookie(k, v)
	return h
}

// SetCookieKVs copies every pair of a raw Cookie header line onto the request.
// Quoted values are sent without their quotes.
func (h *http) SetCookieKVs(kvs string) *http {
	cookies := ReadCookies(kvs)
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		h.req.Header.SetCookie(c.Name, c.Value)
	}
	return h
}

func (h *http) Param(k, v string) *http {
	h.qs[k] = append(h.qs[k], v)
	return h
}

func (h *http) buildQueryString() string {
	var buf bytes.Buffer
	buf.Write(h.uri.QueryString())
	for k, v := range h.qs {
		for _, vv := range v {
			if buf.Len() > 0 {
				buf.WriteByte('&')
			}
			buf.WriteString(url.QueryEscape(k))
			buf.WriteByte('=')
			buf.WriteString(url.QueryEscape(vv))
		}
	}
	return buf.String()
}

func (h *http) Body(body interface{}) *http {
	switch t := body.(type) {
	case string:
		h.req.SetBodyString(t)
	case []byte:
		h.req.SetBody(t)
	default:
		log().Warn("unsupported body data type", slog.String("type", fmt.Sprintf("%T", t)))
		h.fail(errors.Wrapf(ErrUnsupportedBody, "%T", t))
	}
	return h
}

func (h *http) JSONMarshal(obj interface{}) ([]byte, error) {
	bf := bytes.NewBuffer([]byte{})
	jsonEncoder := json.NewEncoder(bf)
	err := jsonEncoder.Encode(obj)
	if err != nil {
		return nil, err
	}
	return bf.Bytes(), nil
}

func (h *http) JsonBody(body interface{}) (*http, error) {
	if body != nil {
		b, err := h.JSONMarshal(body)
		if err != nil {
			return h, errors.Wrap(err, "obj could not be converted to JSON body")
		}
		h.req.SetBody(b)
		h.req.Header.SetContentType("application/json")
	}
	return h, nil
}

func (h *http) ContentType(ct string) *http {
	h.req.Header.SetContentType(ct)
	return h
}

func (h *http) SetTimeout(dur time.Duration) *http {
	h.timeout = dur
	return h
}

func (h *http) do() error {
	if h.err != nil {
		return h.err
	}
	h.uri.SetQueryString(h.buildQueryString())
	h.req.SetURI(h.uri)
	h.req.Header.SetMethod(h.method)
	if h.timeout <= 0 {
		h.timeout = time.Second * 60
	}
	var err error
	if h.usedH2 {
		err = h.h2c.DoTimeout(h.req, h.resp, h.timeout)
	} else {
		err = h.c.DoTimeout(h.req, h.resp, h.timeout)
	}
	if err != nil {
		log().Debug("request failed", slog.String("method", h.method), slog.String("uri", h.uri.String()), slog.Any("error", err))
		return errors.Wrapf(err, "%s %s", h.method, h.uri.String())
	}
	h.collectResponseCookies()
	return nil
}

func (h *http) collectResponseCookies() {
	h.respCookies = make(map[string]string)
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	h.resp.Header.VisitAllCookie(func(key, value []byte) {
		if err := c.ParseBytes(value); err != nil {
			return
		}
		name := string(key)
		if _, seen := h.respCookies[name]; !seen {
			h.respCookies[name] = string(c.Value())
		}
	})
}

// ResponseCookie returns a cookie the server set on the last response.
func (h *http) ResponseCookie(name string) (string, bool) {
	v, ok := h.respCookies[name]
	return v, ok
}

func (h *http) release() {
	fasthttp.ReleaseResponse(h.resp)
	fasthttp.ReleaseRequest(h.req)
	fasthttp.ReleaseURI(h.uri)
}

func (h *http) String() (string, error) {
	defer h.release()
	if e := h.do(); e != nil {
		return "", e
	}
	return string(h.resp.Body()), nil
}

func (h *http) Bytes() ([]byte, error) {
	defer h.release()
	if e := h.do(); e != nil {
		return nil, e
	}
	b := append([]byte(nil), h.resp.Body()...)
	return b, nil
}

func (h *http) Response() (*fasthttp.Response, error) {
	defer h.release()
	if e := h.do(); e != nil {
		return nil, e
	}
	var resp fasthttp.Response
	h.resp.CopyTo(&resp)
	return &resp, nil
}

// Get Sample Get
func Get(url string) *http {
	return new(MethodGet).Url(url)
}

// Post Sample Post
func Post(url string) *http {
	return new(MethodPost).Url(url)
}

// GetH2 Sample Http2 Get
// @Param host api.xx.xx:443,only support 443(https)
func GetH2(url, host string) (*http, error) {
	h, err := newH2(MethodGet, host)
	if err != nil {
		return nil, err
	}
	return h.Url(url), nil
}

// PostH2 Sample Http2 Post
// @Param host api.xx.xx:443,only support 443(https)
func PostH2(url, host string) (*http, error) {
	h, err := newH2(MethodPost, host)
	if err != nil {
		return nil, err
	}
	return h.Url(url), nil
}
