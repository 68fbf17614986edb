package store

import "testing"

func TestStoreSetGetHas(t *testing.T) {
	s := NewMemory()
	if s.Has([]byte("a")) {
		t.Fatal("fresh store reports a key present")
	}
	s.Set([]byte("a"), []byte("1"))
	if !s.Has([]byte("a")) {
		t.Fatal("Has false after Set")
	}
	v, ok := s.Get([]byte("a"))
	if !ok || string(v) != "1" {
		t.Fatalf("Get = (%q, %v), want (1, true)", v, ok)
	}
	if _, ok := s.Get([]byte("missing")); ok {
		t.Fatal("Get reported a nonexistent key present")
	}
}

func TestStorePrefixIsolation(t *testing.T) {
	shared := NewMemory()
	a := New(shared.kvs, []byte("a/"))
	b := New(shared.kvs, []byte("b/"))

	a.Set([]byte("k"), []byte("from-a"))
	b.Set([]byte("k"), []byte("from-b"))

	va, _ := a.Get([]byte("k"))
	vb, _ := b.Get([]byte("k"))
	if string(va) != "from-a" || string(vb) != "from-b" {
		t.Fatalf("prefix collision: a=%q b=%q", va, vb)
	}
}

func TestStoreIterateOrder(t *testing.T) {
	s := NewMemory()
	for i := uint64(0); i < 5; i++ {
		s.Set(SequenceKey(i), []byte{byte(i)})
	}
	var seen []byte
	s.Iterate(func(_, value []byte) bool {
		seen = append(seen, value[0])
		return true
	})
	if len(seen) != 5 {
		t.Fatalf("iterated %d entries, want 5", len(seen))
	}
	for i, v := range seen {
		if int(v) != i {
			t.Fatalf("iterate order = %v, want ascending sequence", seen)
		}
	}
}
