package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lennoxho/img-sort/pkg/pipeline"
)

func TestWriteLines(t *testing.T) {
	out := filepath.Join(t.TempDir(), "order.txt")
	if err := writeLines([]string{"/a.png", "/b.png"}, out); err != nil {
		t.Fatalf("writeLines error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || lines[0] != "/a.png" || lines[1] != "/b.png" {
		t.Errorf("output lines = %v, want the paths in order", lines)
	}
}

func TestWriteManifest(t *testing.T) {
	result := &pipeline.Result{
		Files:   []string{"/a.png", "/b.png", "/c.png"},
		Order:   []int{2, 0, 1},
		Skipped: []string{"/broken.png"},
	}
	opts := &pipeline.Options{Source: "/photos", Metric: "bhattacharyya"}

	out := filepath.Join(t.TempDir(), "manifest.json")
	if err := writeManifest(result, opts, out); err != nil {
		t.Fatalf("writeManifest error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var manifest orderManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}

	if manifest.Source != "/photos" || manifest.Metric != "bhattacharyya" {
		t.Errorf("manifest header = %+v, want source and metric recorded", manifest)
	}
	if len(manifest.Items) != 3 {
		t.Fatalf("manifest has %d items, want 3", len(manifest.Items))
	}
	// Items are in final order with their positions.
	if manifest.Items[0].Path != "/c.png" || manifest.Items[0].Position != 0 {
		t.Errorf("Items[0] = %+v, want /c.png at position 0", manifest.Items[0])
	}
	if len(manifest.Skipped) != 1 {
		t.Errorf("Skipped = %v, want the broken image recorded", manifest.Skipped)
	}
}

func TestOutputWriterStdout(t *testing.T) {
	w, closeFn, err := outputWriter("")
	if err != nil {
		t.Fatalf("outputWriter error: %v", err)
	}
	defer closeFn()
	if w != os.Stdout {
		t.Error("empty output should select stdout")
	}
}
