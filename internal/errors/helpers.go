package errors

import (
	"errors"
	"time"
)

// As is a wrapper around errors.As that works with our Error type
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// GetCode extracts the error code from an error
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMeta extracts metadata from an error
func GetMeta(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Meta
	}

	return nil
}

// GetMessage extracts the user-safe message from an error
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}

	return err.Error()
}

// CooldownRemaining extracts the remaining duration from a cooldown error,
// or zero when the error is not a cooldown.
func CooldownRemaining(err error) time.Duration {
	if GetCode(err) != CodeCooldownActive {
		return 0
	}
	meta := GetMeta(err)
	raw, ok := meta["remaining"].(string)
	if !ok {
		return 0
	}
	d, parseErr := time.ParseDuration(raw)
	if parseErr != nil {
		return 0
	}
	return d
}

// Type checking helpers

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}

// IsFailedPrecondition checks if an error is a failed precondition error
func IsFailedPrecondition(err error) bool {
	return GetCode(err) == CodeFailedPrecondition
}

// IsCooldownActive checks if an error is a cooldown error
func IsCooldownActive(err error) bool {
	return GetCode(err) == CodeCooldownActive
}

// IsVersionConflict checks if an error is a version conflict error
func IsVersionConflict(err error) bool {
	return GetCode(err) == CodeVersionConflict
}

// IsInsufficientResource checks if an error is an insufficient resource error
func IsInsufficientResource(err error) bool {
	return GetCode(err) == CodeInsufficientResource
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}

// IsUnavailable checks if an error is an unavailable error
func IsUnavailable(err error) bool {
	return GetCode(err) == CodeUnavailable
}
