// Package authenticator defines the uniform authenticator contract, with
// server publish/refresh/request-file operations plus client update/verify
// operations, and the concrete variants compared by the simulator.
package authenticator

import "github.com/repoauth/sssim/internal/sizeof"

// PackageID identifies a package in the repository.
type PackageID string

func (p PackageID) Size() uint64 { return sizeof.String(string(p)) }

// UserID identifies an independent client snapshot.
type UserID string

// Revision is a non-negative, monotone per-package counter. Overflow is
// fatal: a package cannot plausibly be republished 2^64 times, so wrapping
// silently would hide a bug rather than a real workload.
type Revision uint64

func (r Revision) Size() uint64 { return sizeof.Uint64Size }

// Increment returns r+1, panicking on overflow.
func (r Revision) Increment() Revision {
	if r == ^Revision(0) {
		panic("authenticator: revision counter overflow")
	}
	return r + 1
}

// Package is a package identifier plus an optional known file length.
type Package struct {
	ID     PackageID
	Length *uint64
}

// Snapshot is a client's local summary of server state.
type Snapshot interface {
	sizeof.DataSized
}

// Diff is the minimum data a client must fetch to move its snapshot
// forward.
type Diff interface {
	sizeof.DataSized
}

// Proof is per-file evidence that a claimed revision matches the
// snapshot's authoritative state.
type Proof interface {
	sizeof.DataSized
}

// Authenticator is the uniform contract every variant implements: server
// operations (Publish/RefreshMetadata/RequestFile/Metadata) and client
// operations, expressed as pure functions over a Snapshot. The client
// holds no extra state beyond the Snapshot value itself.
type Authenticator interface {
	// Name identifies the variant, as surfaced in output file names.
	Name() string

	// ZeroSnapshot is the default snapshot a brand new client starts
	// with, before any refresh has happened.
	ZeroSnapshot() Snapshot

	// Publish records one more revision of pkg.
	Publish(pkg Package)

	// RefreshMetadata returns the diff a client at snap should apply, or
	// false if snap is already current.
	RefreshMetadata(snap Snapshot) (Diff, bool)

	// RequestFile returns pkg's current revision and a proof of it,
	// against the authenticator's current server state.
	RequestFile(pkg PackageID) (Revision, Proof)

	// Metadata is the authenticator's own idea of "a fresh snapshot",
	// used by batch import / tests.
	Metadata() Snapshot

	// CheckNoRollback reports whether applying diff to snap would never
	// decrease any package's observed revision.
	CheckNoRollback(snap Snapshot, diff Diff) bool

	// UpdateSnapshot folds diff into snap, returning the new snapshot.
	UpdateSnapshot(snap Snapshot, diff Diff) Snapshot

	// VerifyMembership checks that pkg is at revision against snap, using
	// proof.
	VerifyMembership(snap Snapshot, pkg PackageID, revision Revision, proof Proof) bool

	// Size is the authenticator's own server-side storage footprint.
	Size() uint64
}
