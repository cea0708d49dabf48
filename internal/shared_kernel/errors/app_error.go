package apperrors

type Type string

const (
	TypeValidation     Type = "validation"
	TypeNotFound       Type = "not_found"
	TypeConflict       Type = "conflict"
	TypeInternal       Type = "internal"
	TypeClassification Type = "classification"
	TypeUnknownAlias   Type = "unknown_alias"
	TypeUnsupported    Type = "unsupported"
	TypeBackend        Type = "backend"
)

type AppError struct {
	Type    Type           `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}

	return e.Message
}

func (e *AppError) IsType(t Type) bool {
	return e != nil && e.Type == t
}

func NewInternal(code, message string, details map[string]any) *AppError {
	return &AppError{
		Type:    TypeInternal,
		Code:    code,
		Message: message,
		Details: details,
	}
}

func NewValidation(code, message string, details map[string]any) *AppError {
	return &AppError{
		Type:    TypeValidation,
		Code:    code,
		Message: message,
		Details: details,
	}
}

func NewNotFound(code, message string, details map[string]any) *AppError {
	return &AppError{
		Type:    TypeNotFound,
		Code:    code,
		Message: message,
		Details: details,
	}
}

func NewConflict(code, message string, details map[string]any) *AppError {
	return &AppError{
		Type:    TypeConflict,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewClassification signals that an asset could not be mapped to any strategy
// alias. It is fatal to the single resolution call that produced it.
func NewClassification(code, message string, details map[string]any) *AppError {
	return &AppError{
		Type:    TypeClassification,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewUnknownAlias signals a registry miss, i.e. a missing strategy
// registration. This is a deployment defect, not a runtime condition.
func NewUnknownAlias(code, message string, details map[string]any) *AppError {
	return &AppError{
		Type:    TypeUnknownAlias,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewUnsupported signals that a strategy deliberately does not implement an
// operation for its asset. Callers are expected to avoid triggering it.
func NewUnsupported(code, message string, details map[string]any) *AppError {
	return &AppError{
		Type:    TypeUnsupported,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewBackend signals a failure from an external chain call. Backend errors
// are transient by default and are isolated at order/group granularity.
func NewBackend(code, message string, details map[string]any) *AppError {
	return &AppError{
		Type:    TypeBackend,
		Code:    code,
		Message: message,
		Details: details,
	}
}
