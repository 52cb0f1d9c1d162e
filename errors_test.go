package ocpp

import (
	"errors"
	"testing"

	"github.com/pazzk-labs/ocpp/internal/config"
	"github.com/pazzk-labs/ocpp/internal/queue"
)

func TestErrorFormatsWithOp(t *testing.T) {
	err := NewError("ChangeConfiguration", CodeInvalidArgument, "unknown key")

	if err.Op != "ChangeConfiguration" {
		t.Errorf("Op = %q, want ChangeConfiguration", err.Op)
	}
	want := "ocpp: ChangeConfiguration: unknown key"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorFormatsWithoutOp(t *testing.T) {
	err := &Error{Code: CodeBusy}
	if got := err.Error(); got != "ocpp: busy" {
		t.Errorf("Error() = %q, want %q", got, "ocpp: busy")
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	err := NewError("Set", CodeNoMemory, "pool exhausted")
	if !errors.Is(err, ErrNoMemory) {
		t.Error("errors.Is(err, ErrNoMemory) = false, want true")
	}
	if errors.Is(err, ErrBusy) {
		t.Error("errors.Is(err, ErrBusy) = true, want false")
	}
}

func TestWrapErrorNilIsNil(t *testing.T) {
	if WrapError("op", nil) != nil {
		t.Error("WrapError(op, nil) != nil")
	}
}

func TestWrapErrorClassifiesInternalSentinels(t *testing.T) {
	cases := []struct {
		err  error
		code Code
	}{
		{config.ErrUnknownKey, CodeInvalidArgument},
		{config.ErrTypeMismatch, CodeInvalidArgument},
		{config.ErrValueTooLong, CodeInvalidArgument},
		{config.ErrNotWritable, CodePermissionDenied},
		{queue.ErrPoolExhausted, CodeNoMemory},
		{queue.ErrNoMessage, CodeNoMessage},
		{queue.ErrNoLink, CodeNoLink},
		{queue.ErrBusy, CodeBusy},
		{queue.ErrAlreadyHandled, CodeAlreadyHandled},
	}
	for _, tc := range cases {
		err := WrapError("Set", tc.err)
		if err.Code != tc.code {
			t.Errorf("WrapError(%v).Code = %v, want %v", tc.err, err.Code, tc.code)
		}
		if !errors.Is(err, tc.err) {
			t.Errorf("errors.Is(WrapError(%v), %v) = false, want true (Unwrap chain broken)", tc.err, tc.err)
		}
	}
}

func TestWrapErrorPreservesExistingError(t *testing.T) {
	inner := NewError("Get", CodeInvalidArgument, "bad key")
	wrapped := WrapError("Store.Get", inner)
	if wrapped.Code != CodeInvalidArgument {
		t.Errorf("Code = %v, want CodeInvalidArgument", wrapped.Code)
	}
	if wrapped.Op != "Store.Get" {
		t.Errorf("Op = %q, want Store.Get", wrapped.Op)
	}
}

func TestIsCode(t *testing.T) {
	err := NewError("Test", CodeBusy, "busy")
	if !IsCode(err, CodeBusy) {
		t.Error("IsCode(err, CodeBusy) = false, want true")
	}
	if IsCode(err, CodeNoLink) {
		t.Error("IsCode(err, CodeNoLink) = true, want false")
	}
	if IsCode(nil, CodeBusy) {
		t.Error("IsCode(nil, CodeBusy) = true, want false")
	}
}
