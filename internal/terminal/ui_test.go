package terminal

import (
	"bytes"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	prev := out
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(prev) })
	return &buf
}

func TestSetOutput_DisablesColorForBuffers(t *testing.T) {
	buf := captureOutput(t)
	Success("booted")
	Warning("careful")
	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("escape codes written to non-terminal: %q", buf.String())
	}
	if buf.String() != "✓ booted\n! careful\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestItem(t *testing.T) {
	buf := captureOutput(t)
	Item(0, "ADMIN", "")
	Item(1, "saml", "SAML SSO")
	got := buf.String()
	if !strings.Contains(got, "  0  ADMIN\n") {
		t.Errorf("row without note: %q", got)
	}
	if !strings.Contains(got, "saml") || !strings.HasSuffix(got, "SAML SSO\n") {
		t.Errorf("row with note: %q", got)
	}
}

func TestSetColor(t *testing.T) {
	captureOutput(t)
	SetColor(true)
	if Mark(true) != "\033[32m✓\033[0m" {
		t.Errorf("Mark(true) = %q", Mark(true))
	}
	SetColor(false)
	if Mark(false) != "✗" {
		t.Errorf("Mark(false) = %q", Mark(false))
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("buffer reported as terminal")
	}
}
