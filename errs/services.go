package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Upstream service errors
var (
	ErrUploadFailed         = errors.New("upload failed")
	ErrServiceNotConfigured = errors.New("service not configured")
	ErrConfigMissing        = errors.New("configuration missing")
)

// NewUploadError reports a storage service rejection with a fixed message.
func NewUploadError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUploadFailed,
		Cause:      cause,
	}
}

func NewServiceNotConfiguredError(service string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        fmt.Errorf("%s %w", service, ErrServiceNotConfigured),
	}
}

func NewConfigMissingError(key string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrConfigMissing,
		Details:    fmt.Sprintf("missing configuration key %s", key),
		Field:      key,
	}
}

func IsUploadError(err error) bool {
	return errors.Is(err, ErrUploadFailed)
}

func IsServiceNotConfigured(err error) bool {
	return errors.Is(err, ErrServiceNotConfigured)
}
