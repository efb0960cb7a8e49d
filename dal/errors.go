package dal

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// IsIndexUnavailable reports whether a store error means "this index
// generation is not applicable": the index does not exist on the table, or
// the key value's type does not match the index's declared key type. These
// are recovered locally by moving to the next generation (or the scan
// fallback) and are never surfaced to the caller. Anything else is fatal
// for the request.
func IsIndexUnavailable(err error) bool {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ResourceNotFoundException", "ValidationException":
			return true
		}
	}
	return false
}
