package authenticator

import "github.com/repoauth/sssim/internal/sizeof"

// VanillaTUFSnapshot mirrors a TUF targets.json: every package's revision,
// signed (conceptually) as a single blob. There is no per-file proof
// structure; a client trusts the whole map once it has fetched it.
type VanillaTUFSnapshot struct {
	Revisions map[PackageID]Revision
}

func (s VanillaTUFSnapshot) Size() uint64 {
	var total uint64
	for id, r := range s.Revisions {
		total += id.Size() + r.Size()
	}
	return total
}

// VanillaTUF is the TUF-targets-style authenticator: it reuses TUF's data
// model (one metadata map listing every package's revision) but performs
// no signature verification. Role-chain and key-signing concerns are out
// of scope for this comparison.
type VanillaTUF struct {
	revisions map[PackageID]Revision
}

var _ Authenticator = (*VanillaTUF)(nil)

func NewVanillaTUF() *VanillaTUF {
	return &VanillaTUF{revisions: make(map[PackageID]Revision)}
}

func (a *VanillaTUF) Name() string { return "vanilla_tuf" }

func (a *VanillaTUF) ZeroSnapshot() Snapshot {
	return VanillaTUFSnapshot{Revisions: make(map[PackageID]Revision)}
}

func (a *VanillaTUF) Publish(pkg Package) {
	a.revisions[pkg.ID] = a.revisions[pkg.ID].Increment()
}

func (a *VanillaTUF) RefreshMetadata(snap Snapshot) (Diff, bool) {
	s := snap.(VanillaTUFSnapshot)
	current := a.snapshotRevisions()
	if revisionMapsEqual(s.Revisions, current) {
		return nil, false
	}
	return VanillaTUFSnapshot{Revisions: current}, true
}

func (a *VanillaTUF) RequestFile(pkg PackageID) (Revision, Proof) {
	return a.revisions[pkg], emptyProof{}
}

func (a *VanillaTUF) Metadata() Snapshot {
	return VanillaTUFSnapshot{Revisions: a.snapshotRevisions()}
}

func (a *VanillaTUF) CheckNoRollback(snap Snapshot, diff Diff) bool {
	s := snap.(VanillaTUFSnapshot)
	d := diff.(VanillaTUFSnapshot)
	for id, r := range d.Revisions {
		if known, ok := s.Revisions[id]; ok && r < known {
			return false
		}
	}
	return true
}

func (a *VanillaTUF) UpdateSnapshot(_ Snapshot, diff Diff) Snapshot {
	return diff.(VanillaTUFSnapshot)
}

func (a *VanillaTUF) VerifyMembership(snap Snapshot, pkg PackageID, revision Revision, _ Proof) bool {
	s := snap.(VanillaTUFSnapshot)
	r, ok := s.Revisions[pkg]
	return ok && r == revision
}

func (a *VanillaTUF) Size() uint64 {
	var total uint64 = sizeof.Uint64Size
	for id, r := range a.revisions {
		total += id.Size() + r.Size()
	}
	return total
}

func (a *VanillaTUF) snapshotRevisions() map[PackageID]Revision {
	out := make(map[PackageID]Revision, len(a.revisions))
	for k, v := range a.revisions {
		out[k] = v
	}
	return out
}

func revisionMapsEqual(a, b map[PackageID]Revision) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
