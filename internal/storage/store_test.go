package storage

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/mira/internal/dynamo"
	"github.com/san-kum/mira/internal/raster"
)

func testParams() dynamo.Params {
	return dynamo.Params{W: 4, P0: dynamo.Point{X: 5}, Pre: 10, Rep: 1000, A: 0.008, S: 0.05, Mu: -0.496, Pow: 0.2}
}

func testImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.Pix[5] = 255
	return img
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := NewRunMetadata(testParams(), "bilinear", 1.1)
	meta.MaxCell = 42
	meta.Metrics = map[string]float64{"coverage": 0.5}

	runID, err := st.Save(meta, testImage(), raster.PNG)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	loaded, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Params() != testParams() {
		t.Errorf("params round trip mismatch: %+v", loaded.Params())
	}
	if loaded.Deposit != "bilinear" || loaded.MaxCell != 42 {
		t.Errorf("unexpected metadata %+v", loaded)
	}
	if loaded.Metrics["coverage"] != 0.5 {
		t.Errorf("expected coverage 0.5, got %f", loaded.Metrics["coverage"])
	}
	if loaded.Image != "image.png" {
		t.Errorf("image = %q, want image.png", loaded.Image)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(NewRunMetadata(testParams(), "nearest", 1), testImage(), raster.BMP); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(NewRunMetadata(testParams(), "bilinear", 1.1), testImage(), raster.TIFF)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, err := os.Stat(st.ImagePath(meta)); os.IsNotExist(err) {
		t.Error("image not created")
	}
}

func TestWriteMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.json")
	if err := writeMetadata(path, NewRunMetadata(testParams(), "nearest", 1)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		t.Error("expected a complete, newline-terminated document")
	}

	if err := writeMetadata(filepath.Join(dir, "absent", "metadata.json"), RunMetadata{}); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}
