// Package fighter defines the record that carries a biography into the
// timeline pipeline and the read-only source it is fetched from.
package fighter

import (
	"context"
	"errors"
	"strconv"
)

// ErrNotFound is returned by a Source when no record has the requested ID.
var ErrNotFound = errors.New("fighter not found")

// Record is the subset of a fighter profile the timeline needs.
type Record struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Nickname string `json:"nickname,omitempty"`
	BioLong  string `json:"bio_long,omitempty"`
}

// Label is the identifier used in telemetry.
func (r Record) Label() string {
	return strconv.FormatInt(r.ID, 10)
}

// Source looks up fighter records.
type Source interface {
	Get(ctx context.Context, id int64) (Record, error)
}
