package authenticator

import "github.com/repoauth/sssim/internal/sizeof"

// Metadata is the per-package state mercury-diff/hash variants track.
type Metadata struct {
	Revision Revision
}

func (m Metadata) Size() uint64 { return m.Revision.Size() }

// MercuryDiffSnapshot is the full package-revision map as of a server
// snapshot id.
type MercuryDiffSnapshot struct {
	ID       int64
	Packages map[PackageID]Metadata
}

func (s MercuryDiffSnapshot) Size() uint64 {
	var total uint64 = sizeof.Uint64Size
	for id, m := range s.Packages {
		total += id.Size() + m.Size()
	}
	return total
}

// MercuryDiffPayload carries only the entries that changed since the
// client's last known snapshot.
type MercuryDiffPayload struct {
	NewID   int64
	Changed map[PackageID]Metadata
}

func (d MercuryDiffPayload) Size() uint64 {
	var total uint64 = sizeof.Uint64Size
	for id, m := range d.Changed {
		total += id.Size() + m.Size()
	}
	return total
}

// MercuryDiff is the server authenticator: it keeps the full current
// revision map and diffs against whatever subset of it a client already
// holds.
type MercuryDiff struct {
	current MercuryDiffSnapshot
}

var _ Authenticator = (*MercuryDiff)(nil)

func NewMercuryDiff() *MercuryDiff {
	return &MercuryDiff{current: MercuryDiffSnapshot{ID: 0, Packages: make(map[PackageID]Metadata)}}
}

func (a *MercuryDiff) Name() string { return "mercury_diff" }

func (a *MercuryDiff) ZeroSnapshot() Snapshot {
	return MercuryDiffSnapshot{ID: -1, Packages: make(map[PackageID]Metadata)}
}

func (a *MercuryDiff) Publish(pkg Package) {
	rev := a.current.Packages[pkg.ID].Revision.Increment()
	packages := make(map[PackageID]Metadata, len(a.current.Packages))
	for k, v := range a.current.Packages {
		packages[k] = v
	}
	packages[pkg.ID] = Metadata{Revision: rev}
	a.current = MercuryDiffSnapshot{ID: a.current.ID + 1, Packages: packages}
}

func (a *MercuryDiff) RefreshMetadata(snap Snapshot) (Diff, bool) {
	s := snap.(MercuryDiffSnapshot)
	if s.ID == a.current.ID {
		return nil, false
	}
	changed := make(map[PackageID]Metadata)
	for id, meta := range a.current.Packages {
		if old, ok := s.Packages[id]; !ok || old != meta {
			changed[id] = meta
		}
	}
	return MercuryDiffPayload{NewID: a.current.ID, Changed: changed}, true
}

func (a *MercuryDiff) RequestFile(pkg PackageID) (Revision, Proof) {
	return a.current.Packages[pkg].Revision, emptyProof{}
}

func (a *MercuryDiff) Metadata() Snapshot {
	packages := make(map[PackageID]Metadata, len(a.current.Packages))
	for k, v := range a.current.Packages {
		packages[k] = v
	}
	return MercuryDiffSnapshot{ID: a.current.ID, Packages: packages}
}

func (a *MercuryDiff) CheckNoRollback(snap Snapshot, diff Diff) bool {
	s := snap.(MercuryDiffSnapshot)
	d := diff.(MercuryDiffPayload)
	for id, meta := range d.Changed {
		if known, ok := s.Packages[id]; ok && meta.Revision < known.Revision {
			return false
		}
	}
	return true
}

func (a *MercuryDiff) UpdateSnapshot(snap Snapshot, diff Diff) Snapshot {
	s := snap.(MercuryDiffSnapshot)
	d := diff.(MercuryDiffPayload)
	packages := make(map[PackageID]Metadata, len(s.Packages)+len(d.Changed))
	for k, v := range s.Packages {
		packages[k] = v
	}
	for k, v := range d.Changed {
		packages[k] = v
	}
	return MercuryDiffSnapshot{ID: d.NewID, Packages: packages}
}

func (a *MercuryDiff) VerifyMembership(snap Snapshot, pkg PackageID, revision Revision, _ Proof) bool {
	s := snap.(MercuryDiffSnapshot)
	m, ok := s.Packages[pkg]
	return ok && m.Revision == revision
}

func (a *MercuryDiff) Size() uint64 {
	return a.current.Size()
}
