package simulator

import (
	"testing"

	"github.com/repoauth/sssim/internal/authenticator"
	"github.com/repoauth/sssim/internal/workload"
)

func TestSimulatorReplay(t *testing.T) {
	sim := New(authenticator.NewHackage())
	length := uint64(2048)

	entries := []workload.Entry{
		{Action: workload.Publish{Package: authenticator.Package{ID: "left-pad", Length: &length}}},
		{Action: workload.RefreshMetadata{User: "alice"}},
		{Action: workload.Download{User: "alice", Package: authenticator.Package{ID: "left-pad"}}},
		{Action: workload.Goodbye{User: "alice"}},
	}

	records := sim.Run(entries)
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}

	download := records[2]
	if download.Entry.Action.(workload.Download).Package.Length == nil {
		t.Fatal("expected the download's package length to be back-filled from the publish")
	}
	if download.Result.ServerStorageBytes == 0 {
		t.Fatal("expected nonzero server storage after a publish")
	}
}

func TestSimulatorImportDiscardsUsage(t *testing.T) {
	sim := New(authenticator.NewInsecure())
	sim.Import([]workload.Entry{
		{Action: workload.Publish{Package: authenticator.Package{ID: "alpha"}}},
	})
	records := sim.Run([]workload.Entry{
		{Action: workload.Download{User: "bob", Package: authenticator.Package{ID: "alpha"}}},
	})
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
}
