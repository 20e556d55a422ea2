package errors

import (
	"fmt"
	"os/exec"
	"testing"
)

func TestError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeSessionMissing, "session not found")
	if err.Code != ErrCodeSessionMissing {
		t.Errorf("expected code %s, got %s", ErrCodeSessionMissing, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeLabelsWrite, "write failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeLabelsWrite) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeTitleWrite) {
		t.Error("Is should return false for non-matching code")
	}

	// Is and GetCode see through fmt.Errorf wrapping
	outer := fmt.Errorf("saving: %w", wrapped)
	if !Is(outer, ErrCodeLabelsWrite) {
		t.Error("Is should unwrap fmt.Errorf chains")
	}
	if GetCode(outer) != ErrCodeLabelsWrite {
		t.Errorf("expected code %s, got %s", ErrCodeLabelsWrite, GetCode(outer))
	}

	// Test WithDetail
	detailed := err.WithDetail("session", "abc").WithDetail("count", 3)
	if detailed.Details["session"] != "abc" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	err := SessionMissing("abc")
	if err.Code != ErrCodeSessionMissing {
		t.Errorf("expected code %s, got %s", ErrCodeSessionMissing, err.Code)
	}
	if err.Details["session"] != "abc" {
		t.Error("SessionMissing should include session detail")
	}

	err = LabelsCorrupt("/tmp/tags.json", fmt.Errorf("bad json"))
	if err.Code != ErrCodeLabelsCorrupt {
		t.Errorf("expected code %s, got %s", ErrCodeLabelsCorrupt, err.Code)
	}
	if err.Details["path"] != "/tmp/tags.json" {
		t.Error("LabelsCorrupt should include path detail")
	}

	err = LabelsUnreadable("/tmp/tags.json", fmt.Errorf("permission denied"))
	if err.Code != ErrCodeLabelsUnreadable {
		t.Errorf("expected code %s, got %s", ErrCodeLabelsUnreadable, err.Code)
	}

	err = ResumeFailed("claude --resume abc", &exec.Error{Name: "claude", Err: exec.ErrNotFound})
	if err.Code != ErrCodeResumeFailed {
		t.Errorf("expected code %s, got %s", ErrCodeResumeFailed, err.Code)
	}
	if _, ok := err.Details["exitCode"]; ok {
		t.Error("ResumeFailed should only record exitCode for exit errors")
	}
}
