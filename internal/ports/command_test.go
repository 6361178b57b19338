package ports

import "testing"

func TestCommandResult_Success(t *testing.T) {
	if !(CommandResult{ExitCode: 0}).Success() {
		t.Error("exit code 0 should be success")
	}
	if (CommandResult{ExitCode: 1}).Success() {
		t.Error("non-zero exit code should not be success")
	}
}

func TestF(t *testing.T) {
	f := F("board", "nrf52840dk")
	if f.Key != "board" || f.Value != "nrf52840dk" {
		t.Errorf("F() = %+v", f)
	}
}
