package xref

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/opal-lang/logix/core/invariant"
	"github.com/opal-lang/logix/core/logic"
	"golang.org/x/crypto/blake2b"
)

// SnapshotVersion is the canonical snapshot format version.
const SnapshotVersion uint8 = 1

// Snapshot is the canonical form of an index: rungs sorted by location so
// the encoding does not depend on insertion order.
type Snapshot struct {
	Version uint8
	Rungs   []SnapshotRung
}

// SnapshotRung is one rung in canonical form.
type SnapshotRung struct {
	Container string
	Routine   string
	Number    int
	Text      string
}

// Snapshot returns the canonical form of the index.
func (x *Index) Snapshot() *Snapshot {
	x.mu.RLock()
	defer x.mu.RUnlock()

	snap := &Snapshot{Version: SnapshotVersion, Rungs: make([]SnapshotRung, 0, len(x.rungs))}
	for _, loc := range x.sortedLocations() {
		snap.Rungs = append(snap.Rungs, SnapshotRung{
			Container: loc.Container,
			Routine:   loc.Routine,
			Number:    loc.Number,
			Text:      x.rungs[loc].String(),
		})
	}
	return snap
}

// MarshalBinary produces the deterministic CBOR encoding of the snapshot.
func (s *Snapshot) MarshalBinary() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}

	// Alias drops the method set so Marshal does not recurse into MarshalBinary.
	type snapshotAlias Snapshot
	data, err := encMode.Marshal((*snapshotAlias)(s))
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return data, nil
}

// UnmarshalBinary decodes a snapshot written by MarshalBinary.
func (s *Snapshot) UnmarshalBinary(data []byte) error {
	type snapshotAlias Snapshot
	if err := cbor.Unmarshal(data, (*snapshotAlias)(s)); err != nil {
		return fmt.Errorf("CBOR decoding failed: %w", err)
	}
	if s.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	return nil
}

// Restore adds every rung of the snapshot to the index. Every location is
// checked first; on error the index is left unchanged.
func (x *Index) Restore(s *Snapshot) error {
	locs := make([]Location, len(s.Rungs))
	for i, r := range s.Rungs {
		locs[i] = Location{Container: r.Container, Routine: r.Routine, Number: r.Number}
		if err := locs[i].validate(); err != nil {
			return fmt.Errorf("snapshot rung %d: %w", i, err)
		}
	}
	for i, r := range s.Rungs {
		invariant.ExpectNoError(x.Add(locs[i], logic.NewNeutralText(r.Text)), "add validated rung")
	}
	return nil
}

// Digest computes the BLAKE2b-256 hash of the canonical snapshot.
// Returns hex-encoded hash: "blake2b:a3f8b2c1..."
func (x *Index) Digest() (string, error) {
	data, err := x.Snapshot().MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to serialize index for digest: %w", err)
	}

	hasher, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	hasher.Write(data)
	return fmt.Sprintf("blake2b:%x", hasher.Sum(nil)), nil
}
