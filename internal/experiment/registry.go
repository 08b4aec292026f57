package experiment

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/san-kum/lifeplayer/internal/config"
)

var ErrUnknownPattern = errors.New("unknown pattern")

// PatternExts are the file extensions treated as pattern files.
var PatternExts = []string{".rle", ".txt"}

// Source is a pattern to load: either inline Text (presets) or a Path
// for the ingestion reader.
type Source struct {
	Name   string
	Path   string
	Text   string
	Preset bool
}

// Registry resolves pattern names against the built-in presets and a
// pattern directory.
type Registry struct {
	dir string
}

func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir}
}

func (r *Registry) Dir() string { return r.dir }

// Resolve looks arg up as a preset, then as a file path, then as a file
// name inside the pattern directory (with or without extension).
func (r *Registry) Resolve(arg string) (Source, error) {
	if p, ok := config.GetPreset(arg); ok {
		return Source{Name: p.Name, Text: p.RLE, Preset: true}, nil
	}
	if isFile(arg) {
		return Source{Name: filepath.Base(arg), Path: arg}, nil
	}
	if r.dir != "" {
		candidates := []string{filepath.Join(r.dir, arg)}
		for _, ext := range PatternExts {
			candidates = append(candidates, filepath.Join(r.dir, arg+ext))
		}
		for _, c := range candidates {
			if isFile(c) {
				return Source{Name: filepath.Base(c), Path: c}, nil
			}
		}
	}
	return Source{}, fmt.Errorf("%w: %s (presets: %s)", ErrUnknownPattern, arg, strings.Join(config.ListPresets(), ", "))
}

// List returns the presets in name order followed by pattern files in
// the directory. A missing directory contributes nothing.
func (r *Registry) List() ([]Source, error) {
	var out []Source
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		out = append(out, Source{Name: p.Name, Text: p.RLE, Preset: true})
	}
	if r.dir == "" {
		return out, nil
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	var files []Source
	for _, e := range entries {
		if e.IsDir() || !IsPatternFile(e.Name()) {
			continue
		}
		files = append(files, Source{Name: e.Name(), Path: filepath.Join(r.dir, e.Name())})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return append(out, files...), nil
}

func IsPatternFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range PatternExts {
		if ext == e {
			return true
		}
	}
	return false
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
