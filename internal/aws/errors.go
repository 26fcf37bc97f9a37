package aws

import (
	"errors"

	"github.com/aws/smithy-go"

	"github.com/vietdv277/amirotate/pkg/provider"
)

// providerError classifies an SDK error as a provider error, keeping the
// API error code and message when the service returned one
func providerError(op, resource string, err error) error {
	e := &provider.Error{
		Kind:     provider.ErrProvider,
		Op:       op,
		Resource: resource,
		Err:      err,
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		e.Code = apiErr.ErrorCode()
		e.Message = apiErr.ErrorMessage()
	}

	return e
}

// deref safely dereferences a string pointer
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// deref64 safely dereferences an int64 pointer
func deref64(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}
