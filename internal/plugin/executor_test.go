package plugin

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func writeScript(t *testing.T, dir, name, content string) *Plugin {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	return &Plugin{
		Manifest:   Manifest{Name: strings.TrimSuffix(name, ".sh"), Executable: name},
		Path:       dir,
		Executable: path,
	}
}

func TestExecutor_Execute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	p := writeScript(t, t.TempDir(), "ok.sh", `#!/bin/sh
echo '{"success":true}'
`)

	executor := NewExecutor(5 * time.Second)
	resp, err := executor.Execute(p, &Request{Primitive: "click", Button: "left"})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if !resp.Success {
		t.Errorf("expected success, got error %q", resp.Error)
	}
}

func TestExecutor_ExecuteReadsStdin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	// The script echoes the received primitive back in the error field.
	p := writeScript(t, t.TempDir(), "echo.sh", `#!/bin/sh
input=$(cat)
printf '{"success":false,"error":"got %s"}' "$(printf '%s' "$input" | sed 's/.*"primitive":"\([^"]*\)".*/\1/')"
`)

	executor := NewExecutor(5 * time.Second)
	resp, err := executor.Execute(p, &Request{Primitive: "scroll", Amount: 3})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}
	if resp.Error != "got scroll" {
		t.Errorf("expected request on stdin, got error %q", resp.Error)
	}
}

func TestExecutor_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	p := writeScript(t, t.TempDir(), "slow.sh", `#!/bin/sh
sleep 5
echo '{"success":true}'
`)

	executor := NewExecutor(100 * time.Millisecond)
	if _, err := executor.Execute(p, &Request{Primitive: "click"}); err == nil {
		t.Fatal("expected timeout error")
	} else if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("expected timeout error, got %v", err)
	}
}

func TestExecutor_MalformedOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	p := writeScript(t, t.TempDir(), "garbage.sh", `#!/bin/sh
echo 'not json at all'
`)

	executor := NewExecutor(5 * time.Second)
	if _, err := executor.Execute(p, &Request{Primitive: "click"}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestExecutor_DefaultTimeout(t *testing.T) {
	executor := NewExecutor(0)
	if executor.timeout != DefaultTimeout {
		t.Errorf("expected default timeout %v, got %v", DefaultTimeout, executor.timeout)
	}
}
