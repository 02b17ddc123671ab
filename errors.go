package cookiekit

import "github.com/pkg/errors"

var (
	ErrInvalidURL      = errors.New("invalid raw url")
	ErrUnsupportedBody = errors.New("unsupported body data type")
	ErrH2Config        = errors.New("http2 configuration failed")
	ErrInvalidConfig   = errors.New("invalid config")
)
