package codec

import (
	"fmt"
	"io"
	"strings"

	"gasnet/internal/domain"
)

// Importer interface for importing networks from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Network, error)
	Format() string
}

// Exporter interface for exporting networks to various formats
type Exporter interface {
	Export(network *domain.Network, w io.Writer) error
	Format() string
}

// Codec both imports and exports one format
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec for a format name. An empty name means JSON.
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// ContentType returns the MIME type for exported data
func ContentType(c Exporter) string {
	if c.Format() == "yaml" {
		return "application/yaml"
	}
	return "application/json"
}

// normalize fills nil slices and params so parsed networks marshal as
// empty lists and maps rather than null
func normalize(n *domain.Network) {
	if n.Nodes == nil {
		n.Nodes = []domain.Node{}
	}
	if n.Edges == nil {
		n.Edges = []domain.Edge{}
	}
	for i := range n.Nodes {
		n.Nodes[i].Params = normalizeParams(n.Nodes[i].Params)
	}
	for i := range n.Edges {
		n.Edges[i].Params = normalizeParams(n.Edges[i].Params)
	}
}

// normalizeParams converts integer values to float64 so numbers compare the
// same whichever format they were read from
func normalizeParams(p domain.Params) domain.Params {
	if p == nil {
		return domain.Params{}
	}
	for k, v := range p {
		switch n := v.(type) {
		case int:
			p[k] = float64(n)
		case int64:
			p[k] = float64(n)
		case uint64:
			p[k] = float64(n)
		}
	}
	return p
}
