package authenticator

// emptySnapshot and emptyDiff are the shared zero-size Snapshot/Diff used
// by the Insecure variant: it makes no claims about server state at all.
type emptySnapshot struct{}

func (emptySnapshot) Size() uint64 { return 0 }

type emptyDiff struct{}

func (emptyDiff) Size() uint64 { return 0 }

type emptyProof struct{}

func (emptyProof) Size() uint64 { return 0 }

// Insecure is the baseline authenticator: it makes no cryptographic claims
// at all. Every check always succeeds; it exists to give every other
// variant a cost floor to compare against.
type Insecure struct {
	revisions map[PackageID]Revision
}

var _ Authenticator = (*Insecure)(nil)

// NewInsecure returns an empty Insecure authenticator.
func NewInsecure() *Insecure {
	return &Insecure{revisions: make(map[PackageID]Revision)}
}

func (a *Insecure) Name() string { return "insecure" }

func (a *Insecure) ZeroSnapshot() Snapshot { return emptySnapshot{} }

func (a *Insecure) Publish(pkg Package) {
	a.revisions[pkg.ID] = a.revisions[pkg.ID].Increment()
}

func (a *Insecure) RefreshMetadata(Snapshot) (Diff, bool) {
	return emptyDiff{}, true
}

func (a *Insecure) RequestFile(pkg PackageID) (Revision, Proof) {
	return a.revisions[pkg], emptyProof{}
}

func (a *Insecure) Metadata() Snapshot { return emptySnapshot{} }

func (a *Insecure) CheckNoRollback(Snapshot, Diff) bool { return true }

func (a *Insecure) UpdateSnapshot(snap Snapshot, _ Diff) Snapshot { return snap }

func (a *Insecure) VerifyMembership(Snapshot, PackageID, Revision, Proof) bool { return true }

func (a *Insecure) Size() uint64 { return 0 }
