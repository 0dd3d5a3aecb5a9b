package nvd

import (
	"errors"
	"fmt"
)

// ErrUpstream matches every failure talking to the advisory source.
var ErrUpstream = errors.New("nvd upstream failure")

// Kind classifies an upstream failure.
type Kind string

const (
	KindTransport Kind = "transport"
	KindStatus    Kind = "status"
	KindDecode    Kind = "decode"
)

// UpstreamError describes why a search produced no usable response.
type UpstreamError struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("nvd %s error: status %d: %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("nvd %s error: %v", e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }
