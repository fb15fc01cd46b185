package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeNetwork, cause, "failed to fetch")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if err.Error() != "NETWORK_ERROR: failed to fetch: underlying error" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIsAndGetCode(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", New(ErrCodeEmptyImageList, "no images"))

	if !Is(wrapped, ErrCodeEmptyImageList) {
		t.Error("Is() should find the code through fmt wrapping")
	}
	if Is(wrapped, ErrCodeNetwork) {
		t.Error("Is() matched the wrong code")
	}
	if got := GetCode(wrapped); got != ErrCodeEmptyImageList {
		t.Errorf("GetCode() = %q", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeNotFound, "tile %s", "x")); got != "tile x" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidPayload, "bad json"), http.StatusBadRequest},
		{New(ErrCodeInvalidGeometry, "bad size"), http.StatusBadRequest},
		{New(ErrCodeNotFound, "missing"), http.StatusNotFound},
		{New(ErrCodeNetwork, "down"), http.StatusBadGateway},
		{New(ErrCodeTimeout, "slow"), http.StatusGatewayTimeout},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
