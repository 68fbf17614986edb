package authenticator

import (
	"encoding/binary"

	"github.com/repoauth/sssim/internal/sizeof"
	"golang.org/x/crypto/sha3"
)

// contentHash is a 32-byte commitment to a package's published content,
// standing in for a real file digest: deterministic in (id, revision) so
// the simulator can compare proofs without ever touching real file bytes.
type contentHash [32]byte

func hashContent(pkg PackageID, revision Revision) contentHash {
	h := sha3.New256()
	h.Write([]byte(pkg))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(revision))
	h.Write(buf[:])
	var out contentHash
	copy(out[:], h.Sum(nil))
	return out
}

// MetadataHash is mercury-hash/-hash-diff's per-package record: a revision
// plus a content hash, letting the client verify file integrity directly
// rather than trusting the snapshot blindly.
type MetadataHash struct {
	Revision Revision
	Hash     contentHash
}

func (m MetadataHash) Size() uint64 { return m.Revision.Size() + sizeof.HashSize }

// MercuryHashSnapshot is the full id-tagged package map.
type MercuryHashSnapshot struct {
	ID       int64
	Packages map[PackageID]MetadataHash
}

func (s MercuryHashSnapshot) Size() uint64 {
	var total uint64 = sizeof.Uint64Size
	for id, m := range s.Packages {
		total += id.Size() + m.Size()
	}
	return total
}

// MercuryHashProof is the content hash a client checks a downloaded file
// against.
type MercuryHashProof struct {
	Hash contentHash
}

func (p MercuryHashProof) Size() uint64 { return sizeof.HashSize }

// MercuryHash always ships the full snapshot on refresh (no diffing), but
// adds per-package content hashes so downloads can be verified for
// integrity, not just revision freshness.
type MercuryHash struct {
	current MercuryHashSnapshot
}

var _ Authenticator = (*MercuryHash)(nil)

func NewMercuryHash() *MercuryHash {
	return &MercuryHash{current: MercuryHashSnapshot{ID: 0, Packages: make(map[PackageID]MetadataHash)}}
}

func (a *MercuryHash) Name() string { return "mercury_hash" }

func (a *MercuryHash) ZeroSnapshot() Snapshot {
	return MercuryHashSnapshot{ID: -1, Packages: make(map[PackageID]MetadataHash)}
}

func (a *MercuryHash) Publish(pkg Package) {
	rev := a.current.Packages[pkg.ID].Revision.Increment()
	packages := make(map[PackageID]MetadataHash, len(a.current.Packages))
	for k, v := range a.current.Packages {
		packages[k] = v
	}
	packages[pkg.ID] = MetadataHash{Revision: rev, Hash: hashContent(pkg.ID, rev)}
	a.current = MercuryHashSnapshot{ID: a.current.ID + 1, Packages: packages}
}

func (a *MercuryHash) RefreshMetadata(snap Snapshot) (Diff, bool) {
	s := snap.(MercuryHashSnapshot)
	if s.ID == a.current.ID {
		return nil, false
	}
	packages := make(map[PackageID]MetadataHash, len(a.current.Packages))
	for k, v := range a.current.Packages {
		packages[k] = v
	}
	return MercuryHashSnapshot{ID: a.current.ID, Packages: packages}, true
}

func (a *MercuryHash) RequestFile(pkg PackageID) (Revision, Proof) {
	meta := a.current.Packages[pkg]
	return meta.Revision, MercuryHashProof{Hash: meta.Hash}
}

func (a *MercuryHash) Metadata() Snapshot {
	packages := make(map[PackageID]MetadataHash, len(a.current.Packages))
	for k, v := range a.current.Packages {
		packages[k] = v
	}
	return MercuryHashSnapshot{ID: a.current.ID, Packages: packages}
}

func (a *MercuryHash) CheckNoRollback(snap Snapshot, diff Diff) bool {
	s := snap.(MercuryHashSnapshot)
	d := diff.(MercuryHashSnapshot)
	for id, meta := range d.Packages {
		if known, ok := s.Packages[id]; ok && meta.Revision < known.Revision {
			return false
		}
	}
	return true
}

func (a *MercuryHash) UpdateSnapshot(_ Snapshot, diff Diff) Snapshot {
	return diff.(MercuryHashSnapshot)
}

func (a *MercuryHash) VerifyMembership(snap Snapshot, pkg PackageID, revision Revision, proof Proof) bool {
	s := snap.(MercuryHashSnapshot)
	p := proof.(MercuryHashProof)
	m, ok := s.Packages[pkg]
	return ok && m.Revision == revision && m.Hash == p.Hash
}

func (a *MercuryHash) Size() uint64 {
	return a.current.Size()
}
