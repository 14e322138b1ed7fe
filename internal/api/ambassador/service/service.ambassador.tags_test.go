package ambassadorsvc

import (
	"testing"
)

func TestExtractTags_Hashtags(t *testing.T) {
	tags := ExtractTags("Bra möte idag #hett #kontrakt-2026-09-15")
	if !hasTag(tags, "hett") {
		t.Errorf("expected hett in %v", tags)
	}
	if !hasDateTag(tags) {
		t.Errorf("expected a date-suffixed tag in %v", tags)
	}
}

func TestExtractTags_Keywords(t *testing.T) {
	tags := ExtractTags("Kunden har problem med leveransen, ring tillbaka imorgon")
	if !hasTag(tags, "problem") {
		t.Errorf("expected problem in %v", tags)
	}
	if !hasTag(tags, "ringabak") {
		t.Errorf("expected ringabak in %v", tags)
	}
}

func TestExtractTags_SwedishCharacters(t *testing.T) {
	tags := ExtractTags("#nöjd ambassadör!")
	if !hasTag(tags, "nöjd") {
		t.Errorf("expected nöjd in %v", tags)
	}
}

func TestExtractTags_Deduplicates(t *testing.T) {
	tags := ExtractTags("#hett och det känns hett")
	count := 0
	for _, tag := range tags {
		if tag == "hett" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("hett must appear once, got %v", tags)
	}
}

func TestMergeTags(t *testing.T) {
	merged := MergeTags([]string{"hett", "budget"}, []string{"Budget", "akut"})
	if len(merged) != 3 {
		t.Fatalf("expected 3 unique tags, got %v", merged)
	}
	if merged[0] != "hett" || merged[1] != "budget" || merged[2] != "akut" {
		t.Errorf("merge must keep first-seen order, got %v", merged)
	}
}

func TestHasTag_DateSuffixedVariant(t *testing.T) {
	if !hasTag([]string{"ringabak-2026-10-01"}, "ringabak") {
		t.Error("date-suffixed variant must count as the base tag")
	}
}
