package authenticator

import "testing"

func TestHackageLogReplay(t *testing.T) {
	a := NewHackage()
	a.Publish(Package{ID: "alpha"})

	mid := a.ZeroSnapshot()
	diff, changed := a.RefreshMetadata(mid)
	if !changed {
		t.Fatal("expected a diff after the first publish")
	}
	mid = a.UpdateSnapshot(mid, diff)

	a.Publish(Package{ID: "beta"})
	a.Publish(Package{ID: "alpha"})

	diff2, changed := a.RefreshMetadata(mid)
	if !changed {
		t.Fatal("expected a diff after further publishes")
	}
	hd := diff2.(HackageDiff)
	if len(hd.Entries) != 2 {
		t.Fatalf("diff replayed %d entries, want 2 (only the tail since the high-water mark)", len(hd.Entries))
	}

	caught := a.UpdateSnapshot(mid, diff2)
	if !a.CheckNoRollback(caught, diff2) {
		t.Fatal("CheckNoRollback false-positived on an already-applied diff")
	}
}
