// Package simulator replays a workload against an authenticator, timing
// each server/client call and tallying bandwidth and storage.
package simulator

import (
	"time"

	"github.com/repoauth/sssim/internal/authenticator"
	"github.com/repoauth/sssim/internal/workload"
	"github.com/repoauth/sssim/internal/xassert"
)

// Simulator drives an authenticator.Authenticator against a replayed
// workload, measuring server/client compute time, bandwidth, and storage.
// It performs no network I/O of its own: the authenticator methods it
// calls are in-process function calls standing in for a network round
// trip.
type Simulator struct {
	auth           authenticator.Authenticator
	snapshots      map[authenticator.UserID]authenticator.Snapshot
	packageLengths map[authenticator.PackageID]uint64
}

// New returns a Simulator driving auth, with no client snapshots or known
// package lengths yet.
func New(auth authenticator.Authenticator) *Simulator {
	return &Simulator{
		auth:           auth,
		snapshots:      make(map[authenticator.UserID]authenticator.Snapshot),
		packageLengths: make(map[authenticator.PackageID]uint64),
	}
}

// snapshotFor returns user's current snapshot, creating a ZeroSnapshot on
// first sight.
func (s *Simulator) snapshotFor(user authenticator.UserID) authenticator.Snapshot {
	if snap, ok := s.snapshots[user]; ok {
		return snap
	}
	snap := s.auth.ZeroSnapshot()
	s.snapshots[user] = snap
	return snap
}

func (s *Simulator) processDownload(a workload.Download) workload.ResourceUsage {
	pkg := a.Package
	if pkg.Length == nil {
		if length, ok := s.packageLengths[pkg.ID]; ok {
			pkg.Length = &length
		}
	}

	serverStart := time.Now()
	revision, proof := s.auth.RequestFile(pkg.ID)
	serverElapsed := time.Since(serverStart)

	snap := s.snapshotFor(a.User)
	userStart := time.Now()
	ok := s.auth.VerifyMembership(snap, pkg.ID, revision, proof)
	userElapsed := time.Since(userStart)
	xassert.Assert(ok, "simulator: download verification failed for %q at revision %d", pkg.ID, revision)

	return workload.ResourceUsage{
		ServerComputeNS:    serverElapsed.Nanoseconds(),
		UserComputeNS:      userElapsed.Nanoseconds(),
		BandwidthBytes:     proof.Size(),
		ServerStorageBytes: s.auth.Size(),
	}
}

func (s *Simulator) processRefreshMetadata(a workload.RefreshMetadata) workload.ResourceUsage {
	snap := s.snapshotFor(a.User)

	serverStart := time.Now()
	diff, changed := s.auth.RefreshMetadata(snap)
	serverElapsed := time.Since(serverStart)

	var bandwidth uint64
	var userElapsed time.Duration
	if changed {
		bandwidth = diff.Size()

		userStart := time.Now()
		ok := s.auth.CheckNoRollback(snap, diff)
		xassert.Assert(ok, "simulator: rollback detected refreshing user %q", a.User)
		s.snapshots[a.User] = s.auth.UpdateSnapshot(snap, diff)
		userElapsed = time.Since(userStart)
	}

	return workload.ResourceUsage{
		ServerComputeNS:    serverElapsed.Nanoseconds(),
		UserComputeNS:      userElapsed.Nanoseconds(),
		BandwidthBytes:     bandwidth,
		ServerStorageBytes: s.auth.Size(),
	}
}

func (s *Simulator) processPublish(a workload.Publish) workload.ResourceUsage {
	if a.Package.Length != nil {
		s.packageLengths[a.Package.ID] = *a.Package.Length
	}

	start := time.Now()
	s.auth.Publish(a.Package)
	elapsed := time.Since(start)

	return workload.ResourceUsage{
		ServerComputeNS:    elapsed.Nanoseconds(),
		ServerStorageBytes: s.auth.Size(),
	}
}

func (s *Simulator) processGoodbye(a workload.Goodbye) workload.ResourceUsage {
	delete(s.snapshots, a.User)
	return workload.ResourceUsage{}
}

// Process dispatches e.Action to the matching process_* handler and
// returns its measured ResourceUsage.
func (s *Simulator) Process(e workload.Entry) workload.ResourceUsage {
	switch a := e.Action.(type) {
	case workload.Download:
		return s.processDownload(a)
	case workload.RefreshMetadata:
		return s.processRefreshMetadata(a)
	case workload.Publish:
		return s.processPublish(a)
	case workload.Goodbye:
		return s.processGoodbye(a)
	default:
		xassert.Assert(false, "simulator: unknown action type %T", a)
		return workload.ResourceUsage{}
	}
}

// Import replays entries with their resource usage discarded, for
// consuming an initial-state file before the timed workload proper.
func (s *Simulator) Import(entries []workload.Entry) {
	for _, e := range entries {
		s.Process(e)
	}
}

// Run replays entries in order, returning one Record per entry.
func (s *Simulator) Run(entries []workload.Entry) []workload.Record {
	records := make([]workload.Record, len(entries))
	for i, e := range entries {
		// Carry the back-filled package length into the output record.
		if d, ok := e.Action.(workload.Download); ok && d.Package.Length == nil {
			if length, ok := s.packageLengths[d.Package.ID]; ok {
				d.Package.Length = &length
				e.Action = d
			}
		}
		records[i] = workload.Record{Entry: e, Result: s.Process(e)}
	}
	return records
}
