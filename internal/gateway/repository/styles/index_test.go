package styles

import "testing"

func TestSearchByTag(t *testing.T) {
	results := Search("minimal")
	if len(results) == 0 {
		t.Fatal("expected results for 'minimal'")
	}
	if results[0].ID != "minimal-mono" {
		t.Fatalf("expected minimal-mono first, got %s", results[0].ID)
	}
}

func TestSearchRanksMultiTokenMatches(t *testing.T) {
	results := Search("neon dark tech")
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if results[0].ID != "neon-dark" {
		t.Fatalf("expected neon-dark first, got %s", results[0].ID)
	}
}

func TestSearchEmptyQueryReturnsCatalog(t *testing.T) {
	results := Search("")
	if len(results) != len(Catalog) {
		t.Fatalf("expected full catalogue, got %d of %d", len(results), len(Catalog))
	}
}

func TestSearchNoMatch(t *testing.T) {
	if results := Search("zzzznope"); len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestByID(t *testing.T) {
	if _, ok := ByID("retro-print"); !ok {
		t.Fatal("retro-print should exist")
	}
	if _, ok := ByID("missing"); ok {
		t.Fatal("missing style should not resolve")
	}
}
