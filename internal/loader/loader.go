// Package loader imports network files from a seed directory into the
// network store.
package loader

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/blake2b"

	"gasnet/internal/codec"
	"gasnet/internal/domain"
)

// File is one parsed network file
type File struct {
	Path    string
	Name    string
	Network *domain.Network
	Sum     string
}

// IsNetworkFile reports whether path has a supported extension
func IsNetworkFile(path string) bool {
	return formatOf(path) != ""
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// ReadFile parses one network file. The network is named after the file
// when the document carries no name.
func ReadFile(path string) (*File, error) {
	format := formatOf(path)
	if format == "" {
		return nil, fmt.Errorf("%s: unsupported file type", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, err
	}
	network, err := c.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	name := network.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		network.Name = name
	}

	sum := blake2b.Sum256(data)
	return &File{
		Path:    path,
		Name:    name,
		Network: network,
		Sum:     hex.EncodeToString(sum[:]),
	}, nil
}

// ReadDir parses every network file in dir, sorted by path. Files that fail
// to parse are logged and skipped.
func ReadDir(dir string) ([]*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read seed dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !IsNetworkFile(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	files := make([]*File, 0, len(paths))
	for _, p := range paths {
		f, err := ReadFile(p)
		if err != nil {
			log.Printf("Skipping seed file: %v", err)
			continue
		}
		files = append(files, f)
	}
	return files, nil
}

// Store is the part of the network service the seeder writes to
type Store interface {
	ListNetworks(ctx context.Context) ([]domain.NetworkSummary, error)
	SaveNetwork(ctx context.Context, req *domain.SaveRequest) (int64, error)
}

// Seeder imports seed files, remembering what it imported so unchanged
// files are not stored twice
type Seeder struct {
	store Store

	mu   sync.Mutex
	seen map[string]string // path -> content sum
}

// NewSeeder creates a seeder writing to store
func NewSeeder(store Store) *Seeder {
	return &Seeder{
		store: store,
		seen:  make(map[string]string),
	}
}

// SeedDir imports every file in dir whose network name is not stored yet
// and returns how many were imported
func (s *Seeder) SeedDir(ctx context.Context, dir string) (int, error) {
	files, err := ReadDir(dir)
	if err != nil {
		return 0, err
	}

	existing, err := s.store.ListNetworks(ctx)
	if err != nil {
		return 0, fmt.Errorf("list networks: %w", err)
	}
	names := make(map[string]bool, len(existing))
	for _, n := range existing {
		names[n.Name] = true
	}

	imported := 0
	for _, f := range files {
		s.mu.Lock()
		s.seen[f.Path] = f.Sum
		s.mu.Unlock()

		if names[f.Name] {
			continue
		}
		if _, err := s.save(ctx, f); err != nil {
			log.Printf("Failed to seed %s: %v", f.Path, err)
			continue
		}
		names[f.Name] = true
		imported++
	}
	return imported, nil
}

// Reload imports path again when its content changed since it was last
// seen. It reports whether a new network was stored.
func (s *Seeder) Reload(ctx context.Context, path string) (bool, error) {
	f, err := ReadFile(path)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	unchanged := s.seen[f.Path] == f.Sum
	s.mu.Unlock()
	if unchanged {
		return false, nil
	}

	if _, err := s.save(ctx, f); err != nil {
		return false, err
	}

	s.mu.Lock()
	s.seen[f.Path] = f.Sum
	s.mu.Unlock()
	return true, nil
}

func (s *Seeder) save(ctx context.Context, f *File) (int64, error) {
	id, err := s.store.SaveNetwork(ctx, &domain.SaveRequest{
		Name:        f.Name,
		Description: "seeded from " + filepath.Base(f.Path),
		Network:     *f.Network,
	})
	if err != nil {
		return 0, err
	}
	log.Printf("Seeded network %q from %s as %d", f.Name, f.Path, id)
	return id, nil
}
