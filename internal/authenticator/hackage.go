package authenticator

import "github.com/repoauth/sssim/internal/sizeof"

// logEntry is one append to the server's publish log.
type logEntry struct {
	Package  PackageID
	Revision Revision
}

// HackageSnapshot is a high-water mark into the server's append log plus
// the client's locally folded revision map.
type HackageSnapshot struct {
	HighWaterMark int
	Revisions     map[PackageID]Revision
}

func (s HackageSnapshot) Size() uint64 {
	var total uint64 = sizeof.Uint64Size
	for id, r := range s.Revisions {
		total += id.Size() + r.Size()
	}
	return total
}

// HackageDiff is the tail of the log since the client's high-water mark.
type HackageDiff struct {
	Entries []logEntry
}

func (d HackageDiff) Size() uint64 {
	var total uint64
	for _, e := range d.Entries {
		total += e.Package.Size() + e.Revision.Size()
	}
	return total
}

// Hackage is the log-based authenticator: the server keeps an append-only
// publish log and a flattened current-revision map; clients catch up by
// replaying the log tail since their high-water mark.
type Hackage struct {
	log       []logEntry
	revisions map[PackageID]Revision
}

var _ Authenticator = (*Hackage)(nil)

func NewHackage() *Hackage {
	return &Hackage{revisions: make(map[PackageID]Revision)}
}

func (a *Hackage) Name() string { return "hackage" }

func (a *Hackage) ZeroSnapshot() Snapshot {
	return HackageSnapshot{Revisions: make(map[PackageID]Revision)}
}

func (a *Hackage) Publish(pkg Package) {
	rev := a.revisions[pkg.ID].Increment()
	a.revisions[pkg.ID] = rev
	a.log = append(a.log, logEntry{Package: pkg.ID, Revision: rev})
}

func (a *Hackage) RefreshMetadata(snap Snapshot) (Diff, bool) {
	s := snap.(HackageSnapshot)
	if s.HighWaterMark >= len(a.log) {
		return nil, false
	}
	return HackageDiff{Entries: append([]logEntry(nil), a.log[s.HighWaterMark:]...)}, true
}

func (a *Hackage) RequestFile(pkg PackageID) (Revision, Proof) {
	return a.revisions[pkg], emptyProof{}
}

func (a *Hackage) Metadata() Snapshot {
	revisions := make(map[PackageID]Revision, len(a.revisions))
	for k, v := range a.revisions {
		revisions[k] = v
	}
	return HackageSnapshot{HighWaterMark: len(a.log), Revisions: revisions}
}

func (a *Hackage) CheckNoRollback(snap Snapshot, diff Diff) bool {
	s := snap.(HackageSnapshot)
	d := diff.(HackageDiff)
	for _, e := range d.Entries {
		if known, ok := s.Revisions[e.Package]; ok && e.Revision < known {
			return false
		}
	}
	return true
}

func (a *Hackage) UpdateSnapshot(snap Snapshot, diff Diff) Snapshot {
	s := snap.(HackageSnapshot)
	d := diff.(HackageDiff)
	revisions := make(map[PackageID]Revision, len(s.Revisions)+len(d.Entries))
	for k, v := range s.Revisions {
		revisions[k] = v
	}
	for _, e := range d.Entries {
		revisions[e.Package] = e.Revision
	}
	return HackageSnapshot{HighWaterMark: s.HighWaterMark + len(d.Entries), Revisions: revisions}
}

func (a *Hackage) VerifyMembership(snap Snapshot, pkg PackageID, revision Revision, _ Proof) bool {
	s := snap.(HackageSnapshot)
	r, ok := s.Revisions[pkg]
	return ok && r == revision
}

func (a *Hackage) Size() uint64 {
	var total uint64
	for id, r := range a.revisions {
		total += id.Size() + r.Size()
	}
	for _, e := range a.log {
		total += e.Package.Size() + e.Revision.Size()
	}
	return total
}
