package wendproj

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteThenRead(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(wd)

	m := New("greeter")
	if err := Write(m); err != nil {
		t.Fatalf("write error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ManifestFile)); err != nil {
		t.Fatalf("expected %s to exist: %v", ManifestFile, err)
	}

	got, err := Read()
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if got.Package != "greeter" || got.Entry != "main.wend" {
		t.Errorf("got %+v, want Package=greeter Entry=main.wend", got)
	}
}
