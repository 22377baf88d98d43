// Package repository defines the data access interface for saved networks.
//
// A saved network is a domain.Network stored under an integer id together
// with a name, an optional description and a content checksum. The sqlite
// subpackage provides the implementation.
//
// GetNetwork returns (nil, nil) when no row matches; callers decide whether
// that is an error. DeleteNetwork returns domain.ErrNotFound for a missing id.
package repository
