package authenticator

import "github.com/repoauth/sssim/internal/sizeof"

// MercuryHashDiffPayload carries only the changed (PackageID, MetadataHash)
// entries, combining mercury-diff's bandwidth saving with mercury-hash's
// content-integrity check.
type MercuryHashDiffPayload struct {
	NewID   int64
	Changed map[PackageID]MetadataHash
}

func (d MercuryHashDiffPayload) Size() uint64 {
	var total uint64 = sizeof.Uint64Size
	for id, m := range d.Changed {
		total += id.Size() + m.Size()
	}
	return total
}

// MercuryHashDiff is the server authenticator combining delta diffing with
// per-package content hashes.
type MercuryHashDiff struct {
	current MercuryHashSnapshot
}

var _ Authenticator = (*MercuryHashDiff)(nil)

func NewMercuryHashDiff() *MercuryHashDiff {
	return &MercuryHashDiff{current: MercuryHashSnapshot{ID: 0, Packages: make(map[PackageID]MetadataHash)}}
}

func (a *MercuryHashDiff) Name() string { return "mercury_hash_diff" }

func (a *MercuryHashDiff) ZeroSnapshot() Snapshot {
	return MercuryHashSnapshot{ID: -1, Packages: make(map[PackageID]MetadataHash)}
}

func (a *MercuryHashDiff) Publish(pkg Package) {
	rev := a.current.Packages[pkg.ID].Revision.Increment()
	packages := make(map[PackageID]MetadataHash, len(a.current.Packages))
	for k, v := range a.current.Packages {
		packages[k] = v
	}
	packages[pkg.ID] = MetadataHash{Revision: rev, Hash: hashContent(pkg.ID, rev)}
	a.current = MercuryHashSnapshot{ID: a.current.ID + 1, Packages: packages}
}

func (a *MercuryHashDiff) RefreshMetadata(snap Snapshot) (Diff, bool) {
	s := snap.(MercuryHashSnapshot)
	if s.ID == a.current.ID {
		return nil, false
	}
	changed := make(map[PackageID]MetadataHash)
	for id, meta := range a.current.Packages {
		if old, ok := s.Packages[id]; !ok || old != meta {
			changed[id] = meta
		}
	}
	return MercuryHashDiffPayload{NewID: a.current.ID, Changed: changed}, true
}

func (a *MercuryHashDiff) RequestFile(pkg PackageID) (Revision, Proof) {
	meta := a.current.Packages[pkg]
	return meta.Revision, MercuryHashProof{Hash: meta.Hash}
}

func (a *MercuryHashDiff) Metadata() Snapshot {
	packages := make(map[PackageID]MetadataHash, len(a.current.Packages))
	for k, v := range a.current.Packages {
		packages[k] = v
	}
	return MercuryHashSnapshot{ID: a.current.ID, Packages: packages}
}

func (a *MercuryHashDiff) CheckNoRollback(snap Snapshot, diff Diff) bool {
	s := snap.(MercuryHashSnapshot)
	d := diff.(MercuryHashDiffPayload)
	for id, meta := range d.Changed {
		if known, ok := s.Packages[id]; ok && meta.Revision < known.Revision {
			return false
		}
	}
	return true
}

func (a *MercuryHashDiff) UpdateSnapshot(snap Snapshot, diff Diff) Snapshot {
	s := snap.(MercuryHashSnapshot)
	d := diff.(MercuryHashDiffPayload)
	packages := make(map[PackageID]MetadataHash, len(s.Packages)+len(d.Changed))
	for k, v := range s.Packages {
		packages[k] = v
	}
	for k, v := range d.Changed {
		packages[k] = v
	}
	return MercuryHashSnapshot{ID: d.NewID, Packages: packages}
}

func (a *MercuryHashDiff) VerifyMembership(snap Snapshot, pkg PackageID, revision Revision, proof Proof) bool {
	s := snap.(MercuryHashSnapshot)
	p := proof.(MercuryHashProof)
	m, ok := s.Packages[pkg]
	return ok && m.Revision == revision && m.Hash == p.Hash
}

func (a *MercuryHashDiff) Size() uint64 {
	return a.current.Size()
}
