package storage

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/san-kum/mira/internal/dynamo"
	"github.com/san-kum/mira/internal/raster"
)

const metadataFile = "metadata.json"

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	W         int                `json:"w"`
	P0X       float64            `json:"p0x"`
	P0Y       float64            `json:"p0y"`
	Pre       int                `json:"pre"`
	Rep       int                `json:"rep"`
	Alpha     float64            `json:"alpha"`
	Sigma     float64            `json:"sigma"`
	Mu        float64            `json:"mu"`
	Pow       float64            `json:"pow"`
	Deposit   string             `json:"deposit"`
	Margin    float64            `json:"margin"`
	MaxCell   uint64             `json:"max_cell"`
	Elapsed   float64            `json:"elapsed_seconds"`
	Image     string             `json:"image"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewRunMetadata fills the parameter fields from p.
func NewRunMetadata(p dynamo.Params, deposit string, margin float64) RunMetadata {
	return RunMetadata{
		W:       p.W,
		P0X:     p.P0.X,
		P0Y:     p.P0.Y,
		Pre:     p.Pre,
		Rep:     p.Rep,
		Alpha:   p.A,
		Sigma:   p.S,
		Mu:      p.Mu,
		Pow:     p.Pow,
		Deposit: deposit,
		Margin:  margin,
	}
}

func (m RunMetadata) Params() dynamo.Params {
	return dynamo.Params{
		W:   m.W,
		P0:  dynamo.Point{X: m.P0X, Y: m.P0Y},
		Pre: m.Pre,
		Rep: m.Rep,
		A:   m.Alpha,
		S:   m.Sigma,
		Mu:  m.Mu,
		Pow: m.Pow,
	}
}

// Save writes the image and its metadata into a new run directory and
// returns the run id.
func (s *Store) Save(meta RunMetadata, img image.Image, format raster.Format) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("gm_%d", now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if format == "" {
		format = raster.PNG
	}
	meta.ID = runID
	meta.Timestamp = now
	meta.Image = "image." + string(format)

	if err := raster.Save(filepath.Join(runDir, meta.Image), img, format); err != nil {
		return "", err
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	metaFile, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		metaFile.Close()
		return err
	}
	return metaFile.Close()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// ImagePath returns the path of a run's image file.
func (s *Store) ImagePath(meta *RunMetadata) string {
	return filepath.Join(s.baseDir, meta.ID, meta.Image)
}
