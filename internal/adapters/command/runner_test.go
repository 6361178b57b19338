package command

import (
	"context"
	"strings"
	"testing"
)

func TestNewRealRunner(t *testing.T) {
	if NewRealRunner() == nil {
		t.Error("NewRealRunner() should not return nil")
	}
}

func TestRealRunner_Run_Success(t *testing.T) {
	runner := NewRealRunner()

	result, err := runner.Run(context.Background(), "", nil, "echo", "hello")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Success() {
		t.Error("Run() should succeed for 'echo hello'")
	}
	if result.Stdout != "hello\n" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "hello\n")
	}
}

func TestRealRunner_Run_NonZeroExit(t *testing.T) {
	runner := NewRealRunner()

	result, err := runner.Run(context.Background(), "", nil, "false")
	if err != nil {
		t.Fatalf("Run() error = %v (should return result with exit code, not error)", err)
	}
	if result.Success() {
		t.Error("Run() should fail for 'false' command")
	}
}

func TestRealRunner_Run_NotFound(t *testing.T) {
	runner := NewRealRunner()

	_, err := runner.Run(context.Background(), "", nil, "nonexistent-command-12345")
	if err == nil {
		t.Error("Run() should return error for non-existent command")
	}
}

func TestRealRunner_Run_WorkingDirectory(t *testing.T) {
	runner := NewRealRunner()
	dir := t.TempDir()

	result, err := runner.Run(context.Background(), dir, nil, "pwd")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := strings.TrimSpace(result.Stdout); !strings.HasSuffix(got, dir) && got != dir {
		t.Errorf("pwd = %q, want %q", got, dir)
	}
}

func TestRealRunner_Run_Environment(t *testing.T) {
	runner := NewRealRunner()

	result, err := runner.Run(context.Background(), "", []string{"GREETING=hi"}, "sh", "-c", "echo $GREETING")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stdout != "hi\n" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "hi\n")
	}
}

func TestRealRunner_Run_CapturesStderr(t *testing.T) {
	runner := NewRealRunner()

	result, err := runner.Run(context.Background(), "", nil, "sh", "-c", "echo oops >&2; exit 1")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stderr != "oops\n" {
		t.Errorf("Stderr = %q, want %q", result.Stderr, "oops\n")
	}
	if result.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", result.ExitCode)
	}
}
