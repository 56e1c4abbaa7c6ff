package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"trek/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestKindConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		kind failure.Kind
	}{
		{
			name: "Validation",
			err:  failure.Validation("bad input"),
			code: http.StatusUnprocessableEntity,
			kind: failure.KindValidation,
		},
		{
			name: "IdentityMismatch",
			err:  failure.IdentityMismatch("name differs"),
			code: http.StatusConflict,
			kind: failure.KindIdentityMismatch,
		},
		{
			name: "Verification",
			err:  failure.Verification("code rejected"),
			code: http.StatusBadRequest,
			kind: failure.KindVerification,
		},
		{
			name: "Payment",
			err:  failure.Payment("declined"),
			code: http.StatusPaymentRequired,
			kind: failure.KindPayment,
		},
		{
			name: "Reconcile",
			err:  failure.Reconcile("booking write failed"),
			code: http.StatusInternalServerError,
			kind: failure.KindReconcile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}
			if got := failure.GetKind(tt.err); got != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, got)
			}
			if !failure.IsKind(tt.err, tt.kind) {
				t.Errorf("expected IsKind to report %s", tt.kind)
			}
		})
	}
}

func TestValidation_CarriesFields(t *testing.T) {
	err := failure.Validation("please correct the highlighted fields",
		failure.FieldError{Field: "start_date", Message: "a travel date must be chosen"},
		failure.FieldError{Field: "terms_accepted", Message: "the terms and conditions must be accepted"},
	)

	var fail *failure.Failure
	if !errors.As(err, &fail) {
		t.Fatal("expected error to unwrap to *failure.Failure")
	}

	if len(fail.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(fail.Fields))
	}

	if fail.Fields[0].Field != "start_date" {
		t.Errorf("expected first field to be start_date, got %s", fail.Fields[0].Field)
	}
}

func TestGetKind_WrappedAndForeignErrors(t *testing.T) {
	wrapped := fmt.Errorf("confirm failed: %w", failure.Payment("declined"))
	if got := failure.GetKind(wrapped); got != failure.KindPayment {
		t.Errorf("expected wrapped error to keep its kind, got %s", got)
	}

	if got := failure.GetKind(errors.New("plain")); got != "" {
		t.Errorf("expected empty kind for foreign error, got %s", got)
	}

	if got := failure.GetCode(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("expected internal server error code for foreign error, got %d", got)
	}
}
