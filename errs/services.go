package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Startup and third-party failures. All of them are 5xx, so clients only
// ever see the generic body.
var (
	ErrMisconfigured       = errors.New("misconfigured")
	ErrMissingSetting      = errors.New("missing setting")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrStorageBackend      = errors.New("storage backend error")
)

// NewConfigError reports a setting that is present but unusable.
func NewConfigError(key string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrMisconfigured,
		Details:    fmt.Sprintf("invalid value for %s", key),
		Field:      key,
		Cause:      cause,
	}
}

// NewMissingSettingError reports that none of keys is set.
func NewMissingSettingError(keys ...string) *ApiErr {
	names := strings.Join(keys, " or ")
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrMissingSetting,
		Details:    fmt.Sprintf("%s is required", names),
		Field:      names,
	}
}

// NewUpstreamError is a transport failure talking to service (email API, object store).
func NewUpstreamError(service string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrUpstreamUnavailable,
		Details:    fmt.Sprintf("%s is unavailable", service),
		Cause:      cause,
	}
}

func NewStorageBackendError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorageBackend,
		Details:    fmt.Sprintf("Failed to %s", operation),
		Cause:      cause,
	}
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrMisconfigured)
}

func IsMissingSettingError(err error) bool {
	return errors.Is(err, ErrMissingSetting)
}

func IsUpstreamError(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable)
}

func IsStorageBackendError(err error) bool {
	return errors.Is(err, ErrStorageBackend)
}
