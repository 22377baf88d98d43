package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"

	"gasnet/internal/domain"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}

	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

// assertNoError fails the test if err is not nil
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// assertEqual fails the test if expected != actual
func assertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

func sampleRequest(name string) *domain.SaveRequest {
	net := domain.NewNetwork(name)
	net.Fluid = "lgas"
	net.AddNode(*domain.NewNode("n1", domain.NodeKindExternalGrid, 0, 0))
	net.AddNode(*domain.NewNode("n2", domain.NodeKindSink, 100, 0))
	net.AddEdge(*domain.NewEdge("e1", "n1", "n2", domain.EdgeKindPipe))
	return &domain.SaveRequest{Name: name, Description: "test network", Network: *net}
}

// ============================================================================
// Helper Function Tests
// ============================================================================

func TestNullToString(t *testing.T) {
	tests := []struct {
		name     string
		input    sql.NullString
		expected string
	}{
		{"valid", sql.NullString{String: "lgas", Valid: true}, "lgas"},
		{"null", sql.NullString{}, ""},
		{"invalid with value", sql.NullString{String: "x", Valid: false}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertEqual(t, tt.expected, nullToString(tt.input))
		})
	}
}

func TestStringToNull(t *testing.T) {
	assertEqual(t, sql.NullString{}, stringToNull(""))
	assertEqual(t, sql.NullString{String: "hgas", Valid: true}, stringToNull("hgas"))
}

func TestNullToTimePtr(t *testing.T) {
	got, err := nullToTimePtr(sql.NullString{})
	assertNoError(t, err)
	if got != nil {
		t.Errorf("expected nil time, got %v", got)
	}

	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	got, err = nullToTimePtr(sql.NullString{String: formatTime(ts), Valid: true})
	assertNoError(t, err)
	if got == nil || !got.Equal(ts) {
		t.Errorf("expected %v, got %v", ts, got)
	}

	if _, err := nullToTimePtr(sql.NullString{String: "yesterday", Valid: true}); err == nil {
		t.Error("expected parse error")
	}
}

func TestChecksum(t *testing.T) {
	a := checksum([]byte(`{"name":"a"}`))
	b := checksum([]byte(`{"name":"b"}`))

	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Error("expected different checksums for different bodies")
	}
	assertEqual(t, a, checksum([]byte(`{"name":"a"}`)))
}

// ============================================================================
// Repository Tests
// ============================================================================

func TestCreateAndGetNetwork(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	req := sampleRequest("grid a")
	id, err := repo.CreateNetwork(ctx, req)
	assertNoError(t, err)
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	saved, err := repo.GetNetwork(ctx, id)
	assertNoError(t, err)
	if saved == nil {
		t.Fatal("expected saved network")
	}

	assertEqual(t, id, saved.ID)
	assertEqual(t, "grid a", saved.Name)
	assertEqual(t, "test network", saved.Description)
	assertEqual(t, "lgas", saved.Network.Fluid)
	assertEqual(t, 2, len(saved.Network.Nodes))
	assertEqual(t, 1, len(saved.Network.Edges))
	if !saved.CreatedAt.Equal(fixed) {
		t.Errorf("expected created_at %v, got %v", fixed, saved.CreatedAt)
	}
	if saved.UpdatedAt != nil {
		t.Errorf("expected no updated_at, got %v", saved.UpdatedAt)
	}
	if len(saved.Checksum) != 64 {
		t.Errorf("expected checksum, got %q", saved.Checksum)
	}

	if v, _ := saved.Network.Edges[0].Params.Float("length_m"); v != 1000 {
		t.Errorf("expected params to survive storage, got length_m %v", v)
	}
}

func TestGetNetworkMissing(t *testing.T) {
	repo := newTestRepo(t)

	saved, err := repo.GetNetwork(context.Background(), 42)
	assertNoError(t, err)
	if saved != nil {
		t.Errorf("expected nil for missing network, got %+v", saved)
	}
}

func TestChecksumTracksContent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id1, err := repo.CreateNetwork(ctx, sampleRequest("same"))
	assertNoError(t, err)
	id2, err := repo.CreateNetwork(ctx, sampleRequest("same"))
	assertNoError(t, err)

	other := sampleRequest("same")
	other.Network.Nodes[0].X = 5
	id3, err := repo.CreateNetwork(ctx, other)
	assertNoError(t, err)

	s1, _ := repo.GetNetwork(ctx, id1)
	s2, _ := repo.GetNetwork(ctx, id2)
	s3, _ := repo.GetNetwork(ctx, id3)

	assertEqual(t, s1.Checksum, s2.Checksum)
	if s1.Checksum == s3.Checksum {
		t.Error("expected checksum to change with content")
	}
}

func TestListNetworks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	list, err := repo.ListNetworks(ctx)
	assertNoError(t, err)
	assertEqual(t, 0, len(list))

	first := sampleRequest("first")
	_, err = repo.CreateNetwork(ctx, first)
	assertNoError(t, err)

	second := sampleRequest("second")
	second.Description = ""
	second.Network.Fluid = ""
	_, err = repo.CreateNetwork(ctx, second)
	assertNoError(t, err)

	list, err = repo.ListNetworks(ctx)
	assertNoError(t, err)
	assertEqual(t, 2, len(list))
	assertEqual(t, "first", list[0].Name)
	assertEqual(t, "lgas", list[0].Fluid)
	assertEqual(t, "second", list[1].Name)
	assertEqual(t, "", list[1].Fluid)
	assertEqual(t, "", list[1].Description)
}

func TestDeleteNetwork(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.CreateNetwork(ctx, sampleRequest("doomed"))
	assertNoError(t, err)

	assertNoError(t, repo.DeleteNetwork(ctx, id))

	saved, err := repo.GetNetwork(ctx, id)
	assertNoError(t, err)
	if saved != nil {
		t.Error("expected network to be gone")
	}

	err = repo.DeleteNetwork(ctx, id)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestIDsNotReused(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id1, err := repo.CreateNetwork(ctx, sampleRequest("a"))
	assertNoError(t, err)
	assertNoError(t, repo.DeleteNetwork(ctx, id1))

	id2, err := repo.CreateNetwork(ctx, sampleRequest("b"))
	assertNoError(t, err)
	if id2 <= id1 {
		t.Errorf("expected id after %d, got %d", id1, id2)
	}
}

func TestNetworkRowBadData(t *testing.T) {
	row := networkRow{ID: 1, Name: "bad", Data: "{", CreatedAt: formatTime(time.Now())}
	if _, err := row.toDomain(); err == nil {
		t.Error("expected unmarshal error")
	}

	row = networkRow{ID: 1, Name: "bad", Data: "{}", CreatedAt: "not a time"}
	if _, err := row.toDomain(); err == nil {
		t.Error("expected time parse error")
	}
}

func TestNetworkRowEmptyLists(t *testing.T) {
	row := networkRow{ID: 1, Name: "empty", Data: `{"name":"empty"}`, CreatedAt: formatTime(time.Now())}
	saved, err := row.toDomain()
	assertNoError(t, err)
	if saved.Network.Nodes == nil || saved.Network.Edges == nil {
		t.Error("expected non-nil node and edge slices")
	}
}
