package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gasnet/internal/domain"
)

type memStore struct {
	saved []domain.SaveRequest
	err   error
}

func (m *memStore) ListNetworks(ctx context.Context) ([]domain.NetworkSummary, error) {
	list := make([]domain.NetworkSummary, 0, len(m.saved))
	for i, s := range m.saved {
		list = append(list, domain.NetworkSummary{ID: int64(i + 1), Name: s.Name})
	}
	return list, nil
}

func (m *memStore) SaveNetwork(ctx context.Context, req *domain.SaveRequest) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.saved = append(m.saved, *req)
	return int64(len(m.saved)), nil
}

const yamlDoc = `name: ring
nodes:
  - {id: n1, type: external_grid}
  - {id: n2, type: sink}
edges:
  - {id: e1, from_node: n1, to_node: n2, type: valve}
`

const jsonDoc = `{"nodes":[{"id":"n1","type":"junction","x":0,"y":0,"params":{}}],"edges":[]}`

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml keeps document name", func(t *testing.T) {
		f, err := ReadFile(writeFile(t, dir, "a.yml", yamlDoc))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Name != "ring" || len(f.Network.Edges) != 1 || f.Sum == "" {
			t.Errorf("unexpected file %+v", f)
		}
	})

	t.Run("json named after file", func(t *testing.T) {
		f, err := ReadFile(writeFile(t, dir, "station.json", jsonDoc))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Name != "station" || f.Network.Name != "station" {
			t.Errorf("got name %q / %q", f.Name, f.Network.Name)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		if _, err := ReadFile(writeFile(t, dir, "notes.txt", "x")); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("malformed document", func(t *testing.T) {
		if _, err := ReadFile(writeFile(t, dir, "bad.json", "{")); err == nil {
			t.Error("expected error")
		}
	})
}

func TestSeedDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ring.yaml", yamlDoc)
	writeFile(t, dir, "station.json", jsonDoc)
	writeFile(t, dir, "broken.json", "{")
	writeFile(t, dir, "README.md", "ignored")
	os.Mkdir(filepath.Join(dir, "nested.json"), 0o755)

	store := &memStore{}
	s := NewSeeder(store)

	n, err := s.SeedDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 imports, got %d", n)
	}
	if store.saved[0].Name != "ring" || store.saved[1].Name != "station" {
		t.Errorf("unexpected import order %q, %q", store.saved[0].Name, store.saved[1].Name)
	}

	again, err := NewSeeder(store).SeedDir(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	if again != 0 {
		t.Errorf("expected existing names to be skipped, imported %d", again)
	}
}

func TestSeedDirMissing(t *testing.T) {
	if _, err := NewSeeder(&memStore{}).SeedDir(context.Background(), filepath.Join(t.TempDir(), "none")); err == nil {
		t.Error("expected error")
	}
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ring.yaml", yamlDoc)

	store := &memStore{}
	s := NewSeeder(store)
	ctx := context.Background()

	if _, err := s.SeedDir(ctx, dir); err != nil {
		t.Fatal(err)
	}

	changed, err := s.Reload(ctx, path)
	if err != nil || changed {
		t.Fatalf("unchanged file reimported: changed=%v err=%v", changed, err)
	}

	writeFile(t, dir, "ring.yaml", yamlDoc+"fluid: hgas\n")
	changed, err = s.Reload(ctx, path)
	if err != nil || !changed {
		t.Fatalf("changed file not reimported: changed=%v err=%v", changed, err)
	}
	if len(store.saved) != 2 || store.saved[1].Network.Fluid != "hgas" {
		t.Errorf("unexpected saves %+v", store.saved)
	}

	store.err = errors.New("database is locked")
	writeFile(t, dir, "ring.yaml", yamlDoc+"fluid: lgas\n")
	if _, err := s.Reload(ctx, path); err == nil {
		t.Fatal("expected store error")
	}
	store.err = nil
	if changed, _ := s.Reload(ctx, path); !changed {
		t.Error("failed import should be retried on the next reload")
	}
}
