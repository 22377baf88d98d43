package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"gasnet/internal/domain"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports a network from JSON
func (c *JSONCodec) Parse(r io.Reader) (*domain.Network, error) {
	var network domain.Network
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&network); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	normalize(&network)
	return &network, nil
}

// Export exports a network to JSON
func (c *JSONCodec) Export(network *domain.Network, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(network); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
