package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMaterializeNaming(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	files := []string{
		filepath.Join(srcDir, "beach.png"),
		filepath.Join(srcDir, "forest.png"),
		filepath.Join(srcDir, "city.png"),
	}
	for _, f := range files {
		touch(t, f)
	}

	written, err := materialize(context.Background(), files, []int{2, 0, 1}, outDir, LinkHard)
	if err != nil {
		t.Fatalf("materialize error: %v", err)
	}
	if written != 3 {
		t.Errorf("written = %d, want 3", written)
	}

	// Position prefix first, original basename second.
	for _, want := range []string{"00000.city.png", "00001.beach.png", "00002.forest.png"} {
		if _, err := os.Stat(filepath.Join(outDir, want)); err != nil {
			t.Errorf("missing output %s: %v", want, err)
		}
	}
}

func TestMaterializeCopy(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	src := filepath.Join(srcDir, "a.png")
	if err := os.WriteFile(src, []byte("pixels"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := materialize(context.Background(), []string{src}, []int{0}, outDir, LinkCopy); err != nil {
		t.Fatalf("materialize error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "00000.a.png"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "pixels" {
		t.Errorf("copied content = %q, want %q", data, "pixels")
	}
}

func TestMaterializeSymlink(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	src := filepath.Join(srcDir, "a.png")
	touch(t, src)

	if _, err := materialize(context.Background(), []string{src}, []int{0}, outDir, LinkSymlink); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	target, err := os.Readlink(filepath.Join(outDir, "00000.a.png"))
	if err != nil {
		t.Fatalf("readlink: %v", err)
	}
	if !filepath.IsAbs(target) {
		t.Errorf("symlink target %q should be absolute", target)
	}
}

func TestMaterializeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := filepath.Join(t.TempDir(), "a.png")
	touch(t, src)
	if _, err := materialize(ctx, []string{src}, []int{0}, t.TempDir(), LinkHard); err != context.Canceled {
		t.Errorf("materialize with cancelled context error = %v, want context.Canceled", err)
	}
}

func TestMaterializeInvalidMode(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.png")
	touch(t, src)
	if _, err := materialize(context.Background(), []string{src}, []int{0}, t.TempDir(), "teleport"); err == nil {
		t.Error("materialize with invalid mode should fail")
	}
}
