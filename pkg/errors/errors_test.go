package errors

import (
	stderrors "errors"
	"testing"
)

func TestNewError(t *testing.T) {
	err := New(ErrCodeInvalidChartFile, "missing [chart] table in %s", "demo.toml")

	if err.Code != ErrCodeInvalidChartFile {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidChartFile)
	}
	want := "INVALID_CHART_FILE: missing [chart] table in demo.toml"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("unexpected token")
	err := Wrap(ErrCodeInvalidConfig, cause, "failed to decode config")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeScaleNotFound, "no scale named %q", "plasma")

	if !Is(err, ErrCodeScaleNotFound) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeInternal) {
		t.Error("Is should not match plain errors")
	}
}

func TestIsMatchesThroughWrapping(t *testing.T) {
	inner := New(ErrCodeFileNotFound, "no such file")
	outer := Wrap(ErrCodeInvalidChartFile, inner, "loading chart")

	// errors.As finds the outermost *Error, so the outer code wins.
	if !Is(outer, ErrCodeInvalidChartFile) {
		t.Error("Is should match the outer code")
	}
	if GetCode(outer) != ErrCodeInvalidChartFile {
		t.Errorf("GetCode = %q, want %q", GetCode(outer), ErrCodeInvalidChartFile)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidRule, "rule condition is empty")
	if got := UserMessage(err); got != "rule condition is empty" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestGetCodeOnPlainError(t *testing.T) {
	if code := GetCode(stderrors.New("plain")); code != "" {
		t.Errorf("GetCode(plain) = %q, want empty", code)
	}
}
