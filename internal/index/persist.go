package index

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/RodrigoAlexander7/law-copilot/internal/domain"
)

// Artifact layout on disk, all three produced and loaded together:
//
//	<name>.lvx           vector blob (magic, dim, count, float32 LE rows)
//	<name>_records.json  article records in index order
//	<name>_manifest.json summary sidecar
const (
	blobMagic   = "LVX1"
	blobSuffix  = ".lvx"
	recSuffix   = "_records.json"
	manSuffix   = "_manifest.json"
	defaultName = "legal_index"
)

// Manifest summarizes an index build for inspection and load validation.
type Manifest struct {
	TotalRecords int      `json:"total_records"`
	Dimension    int      `json:"dimension"`
	Encoder      string   `json:"encoder"`
	SourceIDs    []string `json:"source_ids"`
	IndexKind    string   `json:"index_kind"`
}

// DefaultName is the artifact base name used when none is configured.
func DefaultName() string { return defaultName }

// Save writes the vector blob, the record sequence and the manifest into
// dir under the given base name, and returns the manifest it wrote.
func Save(f *Flat, dir, name, encoderID string) (Manifest, error) {
	manifest := Manifest{
		TotalRecords: len(f.records),
		Dimension:    f.dim,
		Encoder:      encoderID,
		SourceIDs:    distinctSources(f.records),
		IndexKind:    "flat_ip",
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return manifest, fmt.Errorf("failed to create index dir: %w", err)
	}

	if err := writeBlob(filepath.Join(dir, name+blobSuffix), f.dim, f.vectors); err != nil {
		return manifest, err
	}

	recData, err := json.MarshalIndent(f.records, "", "  ")
	if err != nil {
		return manifest, fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+recSuffix), recData, 0o644); err != nil {
		return manifest, fmt.Errorf("failed to write records: %w", err)
	}

	manData, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return manifest, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+manSuffix), manData, 0o644); err != nil {
		return manifest, fmt.Errorf("failed to write manifest: %w", err)
	}
	return manifest, nil
}

// Load reads the three artifacts back and verifies they agree. A missing
// file is ErrMissingArtifact; any count or shape disagreement is
// ErrCorruptIndex. Never truncates or pads to make artifacts fit.
func Load(dir, name string) (*Flat, Manifest, error) {
	var manifest Manifest

	dim, vectors, err := readBlob(filepath.Join(dir, name+blobSuffix))
	if err != nil {
		return nil, manifest, err
	}

	recData, err := os.ReadFile(filepath.Join(dir, name+recSuffix))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, manifest, fmt.Errorf("%w: %s", domain.ErrMissingArtifact, name+recSuffix)
		}
		return nil, manifest, fmt.Errorf("failed to read records: %w", err)
	}
	var records []domain.Article
	if err := json.Unmarshal(recData, &records); err != nil {
		return nil, manifest, fmt.Errorf("%w: records: %v", domain.ErrCorruptIndex, err)
	}

	manData, err := os.ReadFile(filepath.Join(dir, name+manSuffix))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, manifest, fmt.Errorf("%w: %s", domain.ErrMissingArtifact, name+manSuffix)
		}
		return nil, manifest, fmt.Errorf("failed to read manifest: %w", err)
	}
	if err := json.Unmarshal(manData, &manifest); err != nil {
		return nil, manifest, fmt.Errorf("%w: manifest: %v", domain.ErrCorruptIndex, err)
	}

	if len(vectors) != len(records) || manifest.TotalRecords != len(records) {
		return nil, manifest, fmt.Errorf("%w: %d vectors, %d records, manifest says %d",
			domain.ErrCorruptIndex, len(vectors), len(records), manifest.TotalRecords)
	}
	if manifest.Dimension != dim {
		return nil, manifest, fmt.Errorf("%w: blob dimension %d, manifest says %d",
			domain.ErrCorruptIndex, dim, manifest.Dimension)
	}

	f, err := Build(vectors, records)
	if err != nil {
		return nil, manifest, err
	}
	return f, manifest, nil
}

func writeBlob(path string, dim int, vectors [][]float32) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create vector blob: %w", err)
	}

	w := bufio.NewWriter(file)
	if _, err := w.WriteString(blobMagic); err != nil {
		file.Close()
		return fmt.Errorf("failed to write blob header: %w", err)
	}
	header := make([]byte, 8)
	binary.LittleEndian.PutUint32(header[0:4], uint32(dim))
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(vectors)))
	if _, err := w.Write(header); err != nil {
		file.Close()
		return fmt.Errorf("failed to write blob header: %w", err)
	}

	row := make([]byte, 4)
	for _, v := range vectors {
		for _, x := range v {
			binary.LittleEndian.PutUint32(row, math.Float32bits(x))
			if _, err := w.Write(row); err != nil {
				file.Close()
				return fmt.Errorf("failed to write vector row: %w", err)
			}
		}
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("failed to flush vector blob: %w", err)
	}
	return file.Close()
}

func readBlob(path string) (int, [][]float32, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil, fmt.Errorf("%w: %s", domain.ErrMissingArtifact, filepath.Base(path))
		}
		return 0, nil, fmt.Errorf("failed to open vector blob: %w", err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	header := make([]byte, 12)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, fmt.Errorf("%w: blob header: %v", domain.ErrCorruptIndex, err)
	}
	if string(header[:4]) != blobMagic {
		return 0, nil, fmt.Errorf("%w: bad blob magic %q", domain.ErrCorruptIndex, header[:4])
	}
	dim := int(binary.LittleEndian.Uint32(header[4:8]))
	count := int(binary.LittleEndian.Uint32(header[8:12]))
	if dim <= 0 || count < 0 {
		return 0, nil, fmt.Errorf("%w: blob shape %dx%d", domain.ErrCorruptIndex, count, dim)
	}

	vectors := make([][]float32, count)
	buf := make([]byte, 4*dim)
	for i := range vectors {
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, nil, fmt.Errorf("%w: truncated blob at row %d", domain.ErrCorruptIndex, i)
		}
		row := make([]float32, dim)
		for j := range row {
			row[j] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*j:]))
		}
		vectors[i] = row
	}
	return dim, vectors, nil
}

func distinctSources(records []domain.Article) []string {
	set := make(map[string]struct{})
	for _, rec := range records {
		set[rec.SourceID] = struct{}{}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
