package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDebugLogWritesFileAndSinks(t *testing.T) {
	var buf bytes.Buffer
	d := New("gamesvc", &buf)

	var got []Entry
	remove := d.AddSink(SinkFunc(func(e Entry) { got = append(got, e) }))

	d.Log("Current lobby id: %s", "abc123")
	d.LogWarning("Steam - Ignoring unexpected %s callback", "ticket")
	d.LogError("Lobby id is required as the only argument.")

	if len(got) != 3 {
		t.Fatalf("Expected 3 sink entries, got %d", len(got))
	}
	if got[0].Level != LevelInfo || got[0].Message != "Current lobby id: abc123" {
		t.Errorf("Unexpected info entry: %+v", got[0])
	}
	if got[1].Level != LevelWarning {
		t.Errorf("Expected warning, got %v", got[1].Level)
	}
	if got[2].Level != LevelError {
		t.Errorf("Expected error, got %v", got[2].Level)
	}

	out := buf.String()
	if !strings.Contains(out, "[ERROR]") || !strings.Contains(out, "abc123") {
		t.Errorf("File output missing content: %q", out)
	}

	remove()
	d.Log("after removal")
	if len(got) != 3 {
		t.Errorf("Sink received entries after removal")
	}
}

func TestOpenFileDisabledByDefault(t *testing.T) {
	w, err := OpenFile(t.TempDir(), false)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer w.Close()
	if _, ok := w.(*os.File); ok {
		t.Error("Expected a discarding writer when debug=false")
	}
}

func TestOpenFileEnabled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	w, err := OpenFile(dir, true)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if _, err := io.WriteString(w, "hello\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	w.Close()

	info, err := os.Stat(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("Expected log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestOpenFileRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, make([]byte, MaxFileSize+1), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	w, err := OpenFile(dir, true)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer w.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != FileName && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Error("Expected a rotated log file")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() > MaxFileSize {
		t.Errorf("Expected fresh log file, got %d bytes", info.Size())
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.LogError("EOS SDK is not initialized!")
	r.Log("ok")

	if r.Count(LevelError) != 1 || r.Count(LevelInfo) != 1 {
		t.Errorf("Unexpected counts: %+v", r.Entries())
	}
	if !r.Contains(LevelError, "not initialized") {
		t.Error("Contains failed")
	}
	r.Reset()
	if len(r.Entries()) != 0 {
		t.Error("Reset did not clear")
	}
}
