// Package localdir acquires build logs from an on-disk data tree laid out as
// <root>/<architecture>/error_processed/<packet>. Only extracted error logs
// are imported; success directories are ignored.
package localdir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/crimson-sun/sawmill/internal/connector"
	"github.com/crimson-sun/sawmill/internal/model"
)

// resultDir is the only result directory imported.
const resultDir = "error_processed"

func init() {
	connector.Register("localdir", func() connector.Source {
		return &Source{}
	})
}

// Source implements connector.Source over a local data directory.
type Source struct{}

// List walks the tree and returns "<arch>/<file>" names, sorted ascending.
func (s *Source) List(ctx context.Context, cfg connector.SourceConfig) ([]string, error) {
	root := cfg.Endpoint
	if root == "" {
		return nil, fmt.Errorf("localdir source: missing data directory (Endpoint)")
	}

	archDirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("localdir source: list: %w", err)
	}

	var names []string
	for _, archDir := range archDirs {
		if !archDir.IsDir() {
			continue
		}
		if cfg.Architecture != "" && archDir.Name() != cfg.Architecture {
			continue
		}
		dir := filepath.Join(root, archDir.Name(), resultDir)
		files, err := os.ReadDir(dir)
		if err != nil {
			continue // architecture without extracted error logs
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			names = append(names, archDir.Name()+"/"+file.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Fetch reads one log file. name is "<arch>/<file>" as returned by List.
func (s *Source) Fetch(ctx context.Context, cfg connector.SourceConfig, name string) (model.LogRecord, error) {
	arch, file, ok := strings.Cut(name, "/")
	if !ok {
		return model.LogRecord{}, fmt.Errorf("localdir source: malformed name %q", name)
	}

	path := filepath.Join(cfg.Endpoint, arch, resultDir, file)
	content, err := os.ReadFile(path)
	if err != nil {
		return model.LogRecord{}, fmt.Errorf("localdir source: fetch: %w", err)
	}

	date := ""
	if info, err := os.Stat(path); err == nil {
		date = strconv.FormatInt(info.ModTime().Unix(), 10)
	}

	return model.LogRecord{
		PacketName:   strings.ReplaceAll(name, "/", "_"),
		Architecture: arch,
		Date:         date,
		Error:        true,
		Log:          string(content),
	}, nil
}
