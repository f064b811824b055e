package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/openfun/joanie-sub003/internal/pkg/apperror"
)

// decodeAPIError turns an error response into an AppError. Django REST
// Framework bodies come in two shapes: {"detail": "..."} for simple
// failures and a field-to-messages map for validation errors.
func decodeAPIError(status int, body []byte) *apperror.AppError {
	kind, messageID := classifyStatus(status)
	appErr := apperror.New(kind, messageID, http.StatusText(status))
	appErr.Status = status

	if len(body) == 0 {
		return appErr
	}

	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
		appErr.Message = detail.Detail
	}

	if kind == apperror.KindValidation {
		if fields := decodeFieldErrors(body); len(fields) > 0 {
			appErr.Fields = fields
		}
	}
	return appErr
}

func classifyStatus(status int) (apperror.Kind, string) {
	switch {
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return apperror.KindValidation, "common.validation_error"
	case status == http.StatusUnauthorized:
		return apperror.KindAuthentication, "auth.unauthorized"
	case status == http.StatusForbidden:
		return apperror.KindPermission, "auth.permission_denied"
	case status == http.StatusNotFound:
		return apperror.KindNotFound, "common.not_found"
	case status >= 500:
		return apperror.KindServer, "common.unexpected_error"
	default:
		return apperror.KindUnknown, "common.unexpected_error"
	}
}

// decodeFieldErrors reads the DRF validation map. Values are either a
// single message or a list of messages; anything else is stringified.
// The "detail" and "code" keys are metadata, not fields.
func decodeFieldErrors(body []byte) apperror.FieldErrors {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}
	delete(raw, "detail")
	delete(raw, "code")

	fields := make(apperror.FieldErrors, len(raw))
	for field, value := range raw {
		switch v := value.(type) {
		case string:
			fields[field] = []string{v}
		case []any:
			messages := make([]string, 0, len(v))
			for _, item := range v {
				messages = append(messages, fmt.Sprint(item))
			}
			fields[field] = messages
		default:
			fields[field] = []string{fmt.Sprint(v)}
		}
	}
	return fields
}
