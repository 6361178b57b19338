package reconfigure

import (
	"fmt"
	"strings"
)

// Error codes for build bridge operations.
const (
	ErrCodeArtifactMissing = "ARTIFACT_MISSING"
	ErrCodeCommandFailed   = "COMMAND_FAILED"
	ErrCodeArgUpdateFailed = "ARG_UPDATE_FAILED"
	ErrCodeWriteFailed     = "WRITE_FAILED"
	ErrCodeRenderFailed    = "RENDER_FAILED"
)

// BuildError represents a fatal build bridge error with enough context to
// diagnose without rerunning in verbose mode.
type BuildError struct {
	Code       string // Error code for categorization
	Message    string // User-friendly error message
	Path       string // File path involved, if any
	Command    string // External command involved, if any
	Stdout     string // Captured stdout of a failed command
	Stderr     string // Captured stderr of a failed command
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *BuildError) Error() string {
	var parts []string

	if e.Command != "" {
		parts = append(parts, fmt.Sprintf("command %q", e.Command))
	}
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path %q", e.Path))
	}

	if len(parts) > 0 {
		return fmt.Sprintf("%s: %s", strings.Join(parts, ", "), e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *BuildError) Unwrap() error {
	return e.Underlying
}

// Format returns a fully formatted error with all details.
func (e *BuildError) Format() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Command != "" {
		b.WriteString(fmt.Sprintf("\n  Command: %s", e.Command))
	}
	if e.Path != "" {
		b.WriteString(fmt.Sprintf("\n  Path: %s", e.Path))
	}
	if e.Stdout != "" {
		b.WriteString(fmt.Sprintf("\n  Stdout: %s", strings.TrimSpace(e.Stdout)))
	}
	if e.Stderr != "" {
		b.WriteString(fmt.Sprintf("\n  Stderr: %s", strings.TrimSpace(e.Stderr)))
	}
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  Suggestion: %s", e.Suggestion))
	}
	if e.Underlying != nil {
		b.WriteString(fmt.Sprintf("\n  Cause: %s", e.Underlying.Error()))
	}

	return b.String()
}

// NewArtifactMissingError reports a required build output that is absent.
func NewArtifactMissingError(path string) *BuildError {
	return &BuildError{
		Code:       ErrCodeArtifactMissing,
		Message:    "required build artifact not found",
		Path:       path,
		Suggestion: "run a full build first, or check that the previous build step succeeded",
	}
}

// NewCommandFailedError reports a non-zero exit from the meta-build tool,
// surfacing the captured output verbatim.
func NewCommandFailedError(command string, stdout, stderr string) *BuildError {
	return &BuildError{
		Code:    ErrCodeCommandFailed,
		Message: "external command exited with a non-zero status",
		Command: command,
		Stdout:  stdout,
		Stderr:  stderr,
	}
}

// NewArgUpdateFailedError reports a failure to persist pinned configure
// arguments. Unlike the query side, this is fatal.
func NewArgUpdateFailedError(key string, underlying error) *BuildError {
	return &BuildError{
		Code:       ErrCodeArgUpdateFailed,
		Message:    fmt.Sprintf("failed to record configure arguments under %q", key),
		Suggestion: "check that the workspace configuration file is writable",
		Underlying: underlying,
	}
}

// NewWriteFailedError reports a failure to materialize a generated artifact.
func NewWriteFailedError(path string, underlying error) *BuildError {
	return &BuildError{
		Code:       ErrCodeWriteFailed,
		Message:    "failed to write generated file",
		Path:       path,
		Underlying: underlying,
	}
}

// NewRenderFailedError reports a template rendering failure.
func NewRenderFailedError(name string, underlying error) *BuildError {
	return &BuildError{
		Code:       ErrCodeRenderFailed,
		Message:    fmt.Sprintf("failed to render template %q", name),
		Underlying: underlying,
	}
}
