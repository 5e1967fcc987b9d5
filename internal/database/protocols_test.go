package database

import (
	"reflect"
	"testing"
)

func TestFilterByScore(t *testing.T) {
	chunks := []ProtocolChunk{
		{Id: "a", Score: 0.92},
		{Id: "b", Score: 0.70},
		{Id: "c", Score: 0.69},
	}

	kept := FilterByScore(chunks, 0.7)

	if len(kept) != 2 {
		t.Fatalf("kept %d chunks, want 2", len(kept))
	}
	if kept[0].Id != "a" || kept[1].Id != "b" {
		t.Errorf("kept = %v", kept)
	}
}

func TestFilterByScore_Empty(t *testing.T) {
	if kept := FilterByScore(nil, 0.7); kept != nil {
		t.Errorf("expected nil, got %v", kept)
	}
}

func TestUniqueArticles(t *testing.T) {
	chunks := []ProtocolChunk{
		{ArticleID: "PROT-CARD-001"},
		{ArticleID: "PROT-NEFRO-002"},
		{ArticleID: "PROT-CARD-001"},
		{ArticleID: ""},
	}

	got := UniqueArticles(chunks)
	want := []string{"PROT-CARD-001", "PROT-NEFRO-002"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("UniqueArticles() = %v, want %v", got, want)
	}
}
