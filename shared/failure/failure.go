package failure

import (
	"errors"
	"net/http"
)

// Kind classifies a failure for the checkout flow. The state machine only
// ever sees one of these kinds, never a raw transport error.
type Kind string

const (
	// KindValidation covers local, field-scoped input errors. The draft is retained.
	KindValidation Kind = "validation"
	// KindIdentityMismatch is a hard stop: the email belongs to a profile whose
	// name differs from the one provided.
	KindIdentityMismatch Kind = "identity_mismatch"
	// KindVerification covers rejected or expired one-time codes and resend throttling.
	KindVerification Kind = "verification"
	// KindPayment covers gateway declines and payment transport failures. No charge occurred.
	KindPayment Kind = "payment"
	// KindReconcile marks a captured payment without a durable booking. It must
	// never be retried as a fresh payment.
	KindReconcile Kind = "reconcile"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind,omitempty"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError is a single field-scoped validation problem. Missing travel date
// is surfaced with its own field name so the client can focus the date picker.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// Validation returns a field-scoped validation failure.
func Validation(msg string, fields ...FieldError) error {
	return &Failure{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: msg,
		Fields:  fields,
	}
}

// IdentityMismatch returns the hard-stop failure raised when an email resolves
// to an existing profile under a different name.
func IdentityMismatch(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindIdentityMismatch,
		Message: msg,
	}
}

// Verification returns a failure for a rejected or throttled one-time credential.
func Verification(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindVerification,
		Message: msg,
	}
}

// Payment returns a failure for a gateway decline or payment transport error.
func Payment(msg string) error {
	return &Failure{
		Code:    http.StatusPaymentRequired,
		Kind:    KindPayment,
		Message: msg,
	}
}

// Reconcile returns the failure for a captured payment whose booking write did
// not land. Callers must surface this as the most prominent error state.
func Reconcile(msg string) error {
	return &Failure{
		Code:    http.StatusInternalServerError,
		Kind:    KindReconcile,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the checkout failure kind of an error, or the empty Kind for
// errors outside the taxonomy.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return ""
}

// IsKind reports whether the error carries the given failure kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}
