package common

import "testing"

func TestSha256HashWithSalt(t *testing.T) {
	h1 := Sha256HashWithSalt("auctiontrack", "salt-a")
	h2 := Sha256HashWithSalt("auctiontrack", "salt-a")
	if h1 != h2 {
		t.Errorf("same input produced different hashes: %s vs %s", h1, h2)
	}
	if len(h1) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h1))
	}
	if Sha256HashWithSalt("auctiontrack", "salt-b") == h1 {
		t.Error("different salts produced the same hash")
	}
}

func TestUUIDint64Unique(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := UUIDint64()
		if id <= 0 {
			t.Fatalf("non-positive id %d", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
}

func TestIfEmptyStr(t *testing.T) {
	if got := IfEmptyStr("", "fallback"); got != "fallback" {
		t.Errorf("empty input: got %q", got)
	}
	if got := IfEmptyStr("value", "fallback"); got != "value" {
		t.Errorf("non-empty input: got %q", got)
	}
}
