// Package diag provides diagnostic tooling built on top of a drained entity
// stream: a canonical, content-addressable snapshot (grounded in the
// teacher's two-pass canonical-CBOR-then-hash design in
// core/planfmt/canonical.go) and fuzzy "did you mean" lookup over the
// error-kind taxonomy (grounded in runtime/planner/planner.go's use of
// fuzzysearch).
package diag

import (
	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/aledsdavies/shastina/entity"
)

// canonicalEntity is the CBOR wire shape for one entity: a map keyed by
// fixed small integers, which canonical encoding emits in sorted key order,
// so two runs over the same input always serialize to the same bytes.
type canonicalEntity struct {
	Kind    uint8  `cbor:"0,keyasint"`
	Text    string `cbor:"1,keyasint"`
	Prefix  string `cbor:"2,keyasint"`
	Quoting uint8  `cbor:"3,keyasint"`
	Payload string `cbor:"4,keyasint"`
	Count   uint32 `cbor:"5,keyasint"`
	Err     uint8  `cbor:"6,keyasint"`
}

var canonicalEncMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()
	mode, err := opts.EncMode()
	if err != nil {
		panic("diag: invalid canonical CBOR options: " + err.Error())
	}
	return mode
}

// Snapshot is a canonical CBOR encoding of a drained entity stream, fit for
// diffing across runs or builds.
type Snapshot struct {
	Bytes []byte
}

// NewSnapshot canonically encodes entities.
func NewSnapshot(entities []entity.Entity) (Snapshot, error) {
	rows := make([]canonicalEntity, len(entities))
	for i, e := range entities {
		rows[i] = canonicalEntity{
			Kind:    uint8(e.Kind),
			Text:    e.Text,
			Prefix:  e.Prefix,
			Quoting: uint8(e.Quoting),
			Payload: e.Payload,
			Count:   e.Count,
			Err:     uint8(e.Err),
		}
	}
	data, err := canonicalEncMode.Marshal(rows)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Bytes: data}, nil
}

// Fingerprint returns a short BLAKE2b-256 content hash of the snapshot,
// independent of the original document's byte layout (BOM and line-ending
// differences are already normalized away by the filter before this point).
func (s Snapshot) Fingerprint() (string, error) {
	sum := blake2b.Sum256(s.Bytes)
	return hexEncode(sum[:]), nil
}

func hexEncode(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0x0F]
	}
	return string(out)
}
