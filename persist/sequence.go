// SPDX-License-Identifier: MIT

package persist

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/katalvlaran/sbdet/matrix"
	"github.com/katalvlaran/sbdet/snapshot"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// ManifestName is the file describing a sequence directory.
const ManifestName = "manifest.yaml"

// manifestVersion is bumped on incompatible layout changes.
const manifestVersion = 1

// Snapshot file formats.
const (
	FormatCSV    = "csv"
	FormatBinary = "bin"
)

// Manifest describes a sequence directory.
type Manifest struct {
	Version int      `yaml:"version"`
	N       int      `yaml:"n"`
	T       int      `yaml:"t"`
	Format  string   `yaml:"format"`
	Files   []string `yaml:"files"`
}

func snapshotFile(i int, format string) string {
	return fmt.Sprintf("snapshot-%04d.%s", i, format)
}

// SaveSequence validates seq and writes it to dir (created if missing) as one
// file per snapshot in the given format, followed by the manifest.
// Errors: snapshot.ErrConfiguration family, ErrUnknownFormat, I/O errors.
func SaveSequence(dir string, seq snapshot.Sequence, format string) error {
	if format != FormatCSV && format != FormatBinary {
		return fmt.Errorf("persist: SaveSequence: %q: %w", format, ErrUnknownFormat)
	}
	n, t, err := seq.Validate()
	if err != nil {
		return fmt.Errorf("persist: SaveSequence: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persist: create dir: %w", err)
	}

	man := Manifest{Version: manifestVersion, N: n, T: t, Format: format, Files: make([]string, t)}
	for i, m := range seq {
		man.Files[i] = snapshotFile(i, format)
		if err := writeSnapshot(filepath.Join(dir, man.Files[i]), m, format); err != nil {
			return fmt.Errorf("persist: snapshot %d: %w", i, err)
		}
	}

	data, err := yaml.Marshal(&man)
	if err != nil {
		return fmt.Errorf("persist: marshal manifest: %w", err)
	}

	return os.WriteFile(filepath.Join(dir, ManifestName), data, 0o644)
}

func writeSnapshot(path string, m matrix.Matrix, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	if format == FormatCSV {
		err = WriteCSV(w, m)
	} else {
		err = SaveMatrix(w, m)
	}
	if err != nil {
		return err
	}

	return w.Flush()
}

// LoadManifest reads and checks dir/manifest.yaml.
// Errors: ErrManifest, ErrUnknownFormat.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("persist: read manifest: %v: %w", err, ErrManifest)
	}
	var man Manifest
	if err := yaml.Unmarshal(data, &man); err != nil {
		return nil, fmt.Errorf("persist: parse manifest: %v: %w", err, ErrManifest)
	}
	switch {
	case man.Version != manifestVersion:
		return nil, fmt.Errorf("persist: manifest version %d, want %d: %w", man.Version, manifestVersion, ErrManifest)
	case man.Format != FormatCSV && man.Format != FormatBinary:
		return nil, fmt.Errorf("persist: manifest format %q: %w", man.Format, ErrUnknownFormat)
	case man.T < 1 || len(man.Files) != man.T:
		return nil, fmt.Errorf("persist: manifest lists %d files for t=%d: %w", len(man.Files), man.T, ErrManifest)
	}

	return &man, nil
}

// LoadSequence reads a directory written by SaveSequence. Snapshot files are
// decoded concurrently, then the whole sequence is validated against the
// manifest's n and t.
// Errors: ErrManifest, ErrUnknownFormat, ErrMalformed, snapshot.ErrConfiguration
// family, ctx errors.
func LoadSequence(ctx context.Context, dir string) (snapshot.Sequence, error) {
	man, err := LoadManifest(dir)
	if err != nil {
		return nil, err
	}

	seq := make(snapshot.Sequence, man.T)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range man.Files {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := readSnapshot(filepath.Join(dir, filepath.Base(name)), man.Format)
			if err != nil {
				return fmt.Errorf("persist: snapshot %d (%s): %w", i, name, err)
			}
			seq[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	n, _, err := seq.Validate()
	if err != nil {
		return nil, fmt.Errorf("persist: LoadSequence: %w", err)
	}
	if n != man.N {
		return nil, fmt.Errorf("persist: snapshots are %dx%d, manifest says n=%d: %w", n, n, man.N, ErrManifest)
	}

	return seq, nil
}

func readSnapshot(path, format string) (*matrix.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)
	if format == FormatCSV {
		return ReadCSV(r)
	}

	return LoadMatrix(r)
}
