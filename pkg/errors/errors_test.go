package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIncludesInternal(t *testing.T) {
	internal := stdErrors.New("boom")
	err := Wrap(internal, "failed")

	if err.Error() != "failed: boom" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
}

func TestWithInternalCopies(t *testing.T) {
	base := New("TEST", "test", 400)
	with := base.WithInternal(stdErrors.New("oops"))

	if with == base {
		t.Fatal("expected WithInternal to return a copy")
	}

	if base.Internal != nil {
		t.Fatal("expected original error to remain unchanged")
	}

	if with.Internal == nil {
		t.Fatal("expected internal error to be set")
	}
}

func TestFromError(t *testing.T) {
	appErr := ErrNotFound
	if out := FromError(appErr); out != appErr {
		t.Fatal("expected FromError to return the same AppError instance")
	}

	raw := stdErrors.New("raw")
	out := FromError(raw)
	if out.Code != ErrInternalServer.Code {
		t.Fatalf("expected internal server code, got %s", out.Code)
	}
	if out.Internal == nil {
		t.Fatal("expected internal error to be attached")
	}
}

func TestNewNotFoundNamesResource(t *testing.T) {
	err := NewNotFound("Notification")
	if err.Message != "Notification not found" {
		t.Fatalf("unexpected message: %s", err.Message)
	}
	if err.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", err.StatusCode)
	}
	if !stdErrors.Is(err, ErrNotFound) {
		t.Fatal("expected named not-found error to match ErrNotFound")
	}
	if ErrNotFound.Message != "Resource not found" {
		t.Fatal("expected sentinel message to remain unchanged")
	}
}

func TestIsMatchesWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("raise: %w", ErrUnknownEvent.WithMessage("unknown event \"foo\""))
	if !stdErrors.Is(wrapped, ErrUnknownEvent) {
		t.Fatal("expected wrapped copy to match sentinel")
	}
	if stdErrors.Is(wrapped, ErrNotFound) {
		t.Fatal("did not expect match against a different code")
	}
}
