package errors

import (
	stderrors "errors"
	"io/fs"
	"strings"
	"testing"
)

func TestScriptNotFound_Message(t *testing.T) {
	err := NewScriptNotFound("scripts/02_seed_data.sql")

	if err.Path != "scripts/02_seed_data.sql" {
		t.Errorf("Path = %q", err.Path)
	}
	if err.Code != CodeValidation {
		t.Errorf("Code = %d, want %d", err.Code, CodeValidation)
	}
	msg := err.Error()
	for _, want := range []string{"SQL script not found: scripts/02_seed_data.sql", "Reason:", "Suggestion:"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() missing %q:\n%s", want, msg)
		}
	}
}

func TestScriptUnreadable_Unwrap(t *testing.T) {
	cause := &fs.PathError{Op: "open", Path: "scripts/01_create_tables.sql", Err: fs.ErrPermission}
	err := NewScriptUnreadable("scripts/01_create_tables.sql", cause)

	if !stderrors.Is(err, fs.ErrPermission) {
		t.Error("expected errors.Is to find fs.ErrPermission")
	}
	if err.Reason != cause.Error() {
		t.Errorf("Reason = %q, want %q", err.Reason, cause.Error())
	}

	var unreadable *ErrScriptUnreadable
	if !stderrors.As(error(err), &unreadable) {
		t.Fatal("expected errors.As to match *ErrScriptUnreadable")
	}
}

func TestScriptUnreadable_NilCause(t *testing.T) {
	err := NewScriptUnreadable("a.sql", nil)
	if err.Reason == "" {
		t.Error("Reason must not be empty")
	}
	if err.Unwrap() != nil {
		t.Error("Unwrap() should be nil without a cause")
	}
}

func TestInvalidEncoding(t *testing.T) {
	err := NewInvalidEncoding("bad.sql")
	if !strings.Contains(err.Reason, "UTF-8") {
		t.Errorf("Reason = %q", err.Reason)
	}
}

func TestInvalidConfig(t *testing.T) {
	err := NewInvalidConfig("scripts", "at least one script is required")
	if err.Code != CodeInternal {
		t.Errorf("Code = %d, want %d", err.Code, CodeInternal)
	}
	if !strings.Contains(err.Error(), "field 'scripts'") {
		t.Errorf("Error() = %q", err.Error())
	}
}
