package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMissingEnvelope, "no CDATA in %s", "dash.xml")

	if err.Code != ErrCodeMissingEnvelope {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMissingEnvelope)
	}

	if err.Message != "no CDATA in dash.xml" {
		t.Errorf("Message = %v, want %v", err.Message, "no CDATA in dash.xml")
	}

	expected := "MISSING_ENVELOPE: no CDATA in dash.xml"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := Wrap(ErrCodeInvalidJSON, cause, "decode dashboard")

	if err.Code != ErrCodeInvalidJSON {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidJSON)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidJSON, "test"),
			code:     ErrCodeInvalidJSON,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidJSON, "test"),
			code:     ErrCodeMissingEnvelope,
			expected: false,
		},
		{
			name:     "wrapped error uses outer code",
			err:      Wrap(ErrCodeMissingEnvelope, New(ErrCodeInvalidJSON, "inner"), "outer"),
			code:     ErrCodeMissingEnvelope,
			expected: true,
		},
		{
			name:     "typed reference error",
			err:      &DataSourceReferenceError{Visualization: "viz_1", DataSource: "ds_x"},
			code:     ErrCodeInvalidDataSourceReference,
			expected: true,
		},
		{
			name:     "typed error behind fmt wrap",
			err:      fmt.Errorf("validate: %w", &LayoutReferenceError{ItemKind: "input", Item: "in_1"}),
			code:     ErrCodeInvalidLayoutReference,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidJSON,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidJSON,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeMarkupParsing, "test"),
			expected: ErrCodeMarkupParsing,
		},
		{
			name:     "chain error",
			err:      &DataSourceChainError{DataSource: "ds_2", Extends: "ds_9"},
			expected: ErrCodeInvalidDataSourceChain,
		},
		{
			name:     "cycle error",
			err:      &DataSourceCycleError{Chain: []string{"a", "b", "a"}},
			expected: ErrCodeDataSourceCycle,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
		{
			name:     "with cause",
			err:      Wrap(ErrCodeInvalidJSON, errors.New("unexpected EOF"), "decode dashboard"),
			expected: "decode dashboard: unexpected EOF",
		},
		{
			name:     "nested codes",
			err:      fmt.Errorf("parse: %w", Wrap(ErrCodeFileNotFound, New(ErrCodeInvalidInput, "bad path"), "open")),
			expected: "open: bad path",
		},
		{
			name:     "violation",
			err:      fmt.Errorf("validate: %w", &LayoutReferenceError{ItemKind: "visualization", Item: "viz_9"}),
			expected: `layout references unknown visualization "viz_9"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestViolationMessagesNameIDs(t *testing.T) {
	tests := []struct {
		err  error
		want []string
	}{
		{&DataSourceReferenceError{Visualization: "viz_1", DataSource: "ds_missing"}, []string{"viz_1", "ds_missing"}},
		{&DataSourceChainError{DataSource: "ds_derived", Extends: "ds_gone"}, []string{"ds_derived", "ds_gone"}},
		{&LayoutReferenceError{ItemKind: "visualization", Item: "viz_9"}, []string{"visualization", "viz_9"}},
		{&DataSourceCycleError{Chain: []string{"a", "b", "a"}}, []string{"a -> b -> a"}},
	}

	for _, tt := range tests {
		msg := tt.err.Error()
		for _, w := range tt.want {
			if !strings.Contains(msg, w) {
				t.Errorf("Error() = %q, want it to contain %q", msg, w)
			}
		}
	}
}

func TestTypedErrorsWithAs(t *testing.T) {
	err := fmt.Errorf("check: %w", &DataSourceReferenceError{Visualization: "v", DataSource: "d"})

	var refErr *DataSourceReferenceError
	if !errors.As(err, &refErr) {
		t.Fatal("errors.As should find *DataSourceReferenceError")
	}
	if refErr.Visualization != "v" || refErr.DataSource != "d" {
		t.Errorf("got %+v, want visualization v and data source d", refErr)
	}
}
