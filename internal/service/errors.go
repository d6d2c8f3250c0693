package service

import "fmt"

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	BusErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		BusErr.Details[detail.Key] = detail.Payload
	}

	return BusErr
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("invalid value for field '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewImportError(err error) *BusinessError {
	return &BusinessError{
		Code:    "IMPORT_FAILED",
		Message: "the document could not be imported, nothing was applied",
		Details: map[string]any{},
		Err:     err,
	}
}

func NewConfirmationRequired(operation string) *BusinessError {
	return &BusinessError{
		Code:    "CONFIRMATION_REQUIRED",
		Message: fmt.Sprintf("operation '%s' is destructive and must be confirmed", operation),
		Details: map[string]any{
			"operation": operation,
		},
	}
}
