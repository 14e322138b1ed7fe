package ambassadorsvc

import (
	"testing"
	"time"

	ambassadormodels "b8_shield/internal/api/ambassador/models"
)

func TestCalculateTagScore_AkutShortCircuits(t *testing.T) {
	got := CalculateTagScore([]string{"akut"}, 0)
	if got.Score != 100 || got.Urgency != UrgencyCritical {
		t.Fatalf("akut must give 100/critical, got %d/%s", got.Score, got.Urgency)
	}

	// Other tags present must not change the short-circuit.
	got = CalculateTagScore([]string{"nöjd", "akut", "hett"}, 5)
	if got.Score != 100 || got.Urgency != UrgencyCritical {
		t.Fatalf("akut with other tags must still give 100/critical, got %d/%s", got.Score, got.Urgency)
	}
}

func TestCalculateTagScore_RingabakFresh(t *testing.T) {
	got := CalculateTagScore([]string{"ringabak"}, 0)
	if got.Score != 35 {
		t.Errorf("ringabak at 0 days must score 35, got %d", got.Score)
	}
	if got.Urgency != UrgencyMedium {
		t.Errorf("ringabak at 0 days must be medium, got %s", got.Urgency)
	}
}

func TestCalculateTagScore_RingabakEscalatesWithoutDateTag(t *testing.T) {
	got := CalculateTagScore([]string{"ringabak"}, 2)
	if got.Score != 50 {
		t.Errorf("ringabak at 2 days without date tag must score 50, got %d", got.Score)
	}
	if got.Urgency != UrgencyHigh {
		t.Errorf("escalated ringabak must be high, got %s", got.Urgency)
	}
}

func TestCalculateTagScore_RingabakWithDateTagStaysFlat(t *testing.T) {
	got := CalculateTagScore([]string{"ringabak", "ringabak-2026-09-15"}, 4)
	if got.Score != 35 {
		t.Errorf("ringabak with planned date must stay at 35, got %d", got.Score)
	}
}

func TestCalculateTagScore_ProblemEscalates(t *testing.T) {
	if got := CalculateTagScore([]string{"problem"}, 0); got.Score != 40 {
		t.Errorf("problem at 0 days must score 40, got %d", got.Score)
	}
	if got := CalculateTagScore([]string{"problem"}, 4); got.Score != 60 {
		t.Errorf("problem at 4 days must score 60, got %d", got.Score)
	}
}

func TestCalculateTagScore_HettDecaysToFloor(t *testing.T) {
	if got := CalculateTagScore([]string{"hett"}, 0); got.Score != 40 {
		t.Errorf("hett at 0 days must score 40, got %d", got.Score)
	}
	if got := CalculateTagScore([]string{"hett"}, 3); got.Score != 31 {
		t.Errorf("hett at 3 days must score 31, got %d", got.Score)
	}
	if got := CalculateTagScore([]string{"hett"}, 30); got.Score != 20 {
		t.Errorf("hett must floor at 20, got %d", got.Score)
	}
}

func TestCalculateTagScore_FlatAdditions(t *testing.T) {
	got := CalculateTagScore([]string{"kontrakt", "budget", "nöjd"}, 0)
	if got.Score != 60 {
		t.Errorf("kontrakt+budget+nöjd must score 60, got %d", got.Score)
	}
	if got.Urgency != UrgencyHigh {
		t.Errorf("score 60 must be high, got %s", got.Urgency)
	}
}

func TestCalculateTagScore_NoTags(t *testing.T) {
	got := CalculateTagScore(nil, 10)
	if got.Score != 0 || got.Urgency != UrgencyLow {
		t.Errorf("no tags must score 0/low, got %d/%s", got.Score, got.Urgency)
	}
}

func TestCalculateTriggerScore_TierAndStatusAdditions(t *testing.T) {
	contact := &ambassadormodels.Contact{
		InfluencerTier: ambassadormodels.TierMega,
		Status:         ambassadormodels.ContactStatusNegotiating,
	}
	base := TagScore{Score: 35}
	if got := CalculateTriggerScore(contact, base, 0); got != 75 {
		t.Errorf("mega+negotiating must add 40 to the tag score, got %d", got)
	}

	contact = &ambassadormodels.Contact{
		InfluencerTier: ambassadormodels.TierMicro,
		Status:         ambassadormodels.ContactStatusContacted,
	}
	if got := CalculateTriggerScore(contact, base, 10); got != 60 {
		t.Errorf("micro+contacted+stale must add 25, got %d", got)
	}
	if got := CalculateTriggerScore(contact, base, 2); got != 40 {
		t.Errorf("contacted but fresh must only add the tier bonus, got %d", got)
	}
}

func TestIsBusinessHours(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		t.Skip("tzdata not available")
	}

	monday10 := time.Date(2026, 9, 7, 10, 0, 0, 0, loc)
	if !IsBusinessHours(monday10) {
		t.Error("Monday 10:00 Stockholm must be business hours")
	}
	monday18 := time.Date(2026, 9, 7, 18, 0, 0, 0, loc)
	if IsBusinessHours(monday18) {
		t.Error("Monday 18:00 must not be business hours")
	}
	saturday := time.Date(2026, 9, 5, 12, 0, 0, 0, loc)
	if IsBusinessHours(saturday) {
		t.Error("Saturday must not be business hours")
	}
}

func TestFilterTriggers_BusinessHoursTopThree(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		t.Skip("tzdata not available")
	}
	now := time.Date(2026, 9, 7, 10, 0, 0, 0, loc)

	results := []TriggerResult{
		{Score: 20}, {Score: 80}, {Score: 10}, {Score: 40}, {Score: 30},
	}
	got := FilterTriggers(results, now)
	if len(got) != 3 {
		t.Fatalf("business hours must cap to top 3, got %d", len(got))
	}
	if got[0].Score != 80 || got[1].Score != 40 || got[2].Score != 30 {
		t.Errorf("results not sorted by score: %v", got)
	}
}

func TestFilterTriggers_AfterHoursOnlyHighOrCritical(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Stockholm")
	if err != nil {
		t.Skip("tzdata not available")
	}
	now := time.Date(2026, 9, 7, 22, 0, 0, 0, loc)

	results := []TriggerResult{
		{Score: 45},
		{Score: 60},
		{Score: 30, TagScore: TagScore{Urgency: UrgencyCritical}},
	}
	got := FilterTriggers(results, now)
	if len(got) != 2 {
		t.Fatalf("after hours only >50 or critical surface, got %d", len(got))
	}
	for _, r := range got {
		if r.Score <= 50 && r.TagScore.Urgency != UrgencyCritical {
			t.Errorf("unexpected result after hours: %+v", r)
		}
	}
}

func TestDeriveTier(t *testing.T) {
	cases := []struct {
		audience int64
		want     string
	}{
		{5000, ambassadormodels.TierNano},
		{10000, ambassadormodels.TierMicro},
		{99999, ambassadormodels.TierMicro},
		{100000, ambassadormodels.TierMacro},
		{1000000, ambassadormodels.TierMega},
	}
	for _, c := range cases {
		if got := ambassadormodels.DeriveTier(c.audience); got != c.want {
			t.Errorf("DeriveTier(%d) = %s, want %s", c.audience, got, c.want)
		}
	}
}
