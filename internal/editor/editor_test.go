package editor

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name   string
		visual string
		editor string
		want   []string
	}{
		{name: "visual wins", visual: "code --wait", editor: "nvim", want: []string{"code", "--wait"}},
		{name: "editor when visual unset", editor: "nvim", want: []string{"nvim"}},
		{name: "blank visual treated as unset", visual: "   ", editor: "emacs -nw", want: []string{"emacs", "-nw"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("VISUAL", tt.visual)
			t.Setenv("EDITOR", tt.editor)

			got := Command()
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("Command() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommand_Fallback(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	got := Command()
	want := "vi"
	if _, err := exec.LookPath("nano"); err == nil {
		want = "nano"
	}
	if len(got) != 1 || got[0] != want {
		t.Errorf("Command() = %q, want [%s]", got, want)
	}
}

func TestOpen_Integration(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping integration test on windows (uses shell script mock)")
	}

	tmpDir := t.TempDir()
	mockEditor := filepath.Join(tmpDir, "mock-editor.sh")
	outputFile := filepath.Join(tmpDir, "output.txt")

	script := "#!/bin/sh\necho \"$@\" > " + outputFile + "\necho edited\n"
	if err := os.WriteFile(mockEditor, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", mockEditor+" --wait")

	target := filepath.Join(tmpDir, ".gertty.yaml")
	if err := os.WriteFile(target, []byte("servers: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	s := &Session{Stdin: strings.NewReader(""), Stdout: &stdout, Stderr: &stdout}
	if err := s.Open(context.Background(), target); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	got, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(got)) != "--wait "+target {
		t.Errorf("mock editor args = %q, want %q", strings.TrimSpace(string(got)), "--wait "+target)
	}
	if !strings.Contains(stdout.String(), "edited") {
		t.Errorf("editor stdout not forwarded: %q", stdout.String())
	}
}

func TestOpen_MissingEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "non-existent-binary-12345")

	var out bytes.Buffer
	s := &Session{Stdin: strings.NewReader(""), Stdout: &out, Stderr: &out}
	if err := s.Open(context.Background(), "test.yaml"); err == nil {
		t.Error("expected error for non-existent editor, got nil")
	}
}
