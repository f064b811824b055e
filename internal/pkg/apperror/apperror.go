package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error the way the admin UI reacts to it:
// transport problems keep user state, validation problems carry
// per-field detail, not-found gets its own message, and so on.
type Kind int

const (
	KindUnknown        Kind = iota
	KindTransport           // request never produced an HTTP response
	KindServer              // 5xx or an unreadable response
	KindValidation          // 400/422 with field-level detail
	KindNotFound            // 404
	KindAuthentication      // 401
	KindPermission          // 403
)

// FieldErrors holds server-side validation messages keyed by field name,
// matching the error body shape {"field": ["msg", ...]}.
type FieldErrors map[string][]string

// AppError is the error type crossing the SDK boundary. It carries the
// classification, the HTTP status when one was received, a message catalog
// id for the user-facing text, and optional per-field validation detail.
type AppError struct {
	Kind      Kind
	Status    int         // HTTP status code, 0 when no response was received
	MessageID string      // i18n catalog id (e.g. "organizations.fetch_error")
	Message   string      // developer-facing fallback text
	Fields    FieldErrors // validation detail, nil for other kinds
	Err       error       // the underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a kind, message catalog id and fallback text.
func New(kind Kind, messageID, message string) *AppError {
	return &AppError{
		Kind:      kind,
		MessageID: messageID,
		Message:   message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, kind Kind, messageID, message string) *AppError {
	return &AppError{
		Kind:      kind,
		MessageID: messageID,
		Message:   message,
		Err:       err,
	}
}

// WithStatus returns a copy of the error annotated with the HTTP status.
func (e *AppError) WithStatus(status int) *AppError {
	clone := *e
	clone.Status = status
	return &clone
}

// WithFields returns a copy of the error carrying field-level detail.
func (e *AppError) WithFields(fields FieldErrors) *AppError {
	clone := *e
	clone.Fields = fields
	return &clone
}

// WithMessageID returns a copy of the error resolving to a different
// catalog message.
func (e *AppError) WithMessageID(messageID string) *AppError {
	clone := *e
	clone.MessageID = messageID
	return &clone
}

// KindOf extracts the Kind from an error chain, KindUnknown if none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// FieldsOf extracts validation detail from an error chain, nil if none.
func FieldsOf(err error) FieldErrors {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}

// IsNotFound reports whether the error chain contains a not-found error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsValidation reports whether the error chain contains a validation error.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// Translator is the subset of the message catalog the error surface needs.
// Declared here so apperror does not depend on the i18n package.
type Translator interface {
	T(id string, params ...string) string
}

// Localize resolves the user-facing text for an error through the given
// translator. Errors without a message id fall back to a generic message.
func Localize(t Translator, err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.MessageID != "" {
		return t.T(appErr.MessageID)
	}
	return t.T("common.unexpected_error")
}
