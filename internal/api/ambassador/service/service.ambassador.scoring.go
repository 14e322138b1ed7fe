package ambassadorsvc

import (
	"fmt"
	"sort"
	"strings"
	"time"

	ambassadormodels "b8_shield/internal/api/ambassador/models"
)

// Urgency levels for the dashboard.
const (
	UrgencyCritical = "critical"
	UrgencyHigh     = "high"
	UrgencyMedium   = "medium"
	UrgencyLow      = "low"
)

// staleDays is the age in days after which a contact counts as stale for the
// trigger score.
const staleDays = 7

// TagScore is the scorer's verdict for one contact.
type TagScore struct {
	Score   int    `json:"score"`
	Reason  string `json:"reason"`
	Urgency string `json:"urgency"`
}

// CalculateTagScore scores a contact from its merged tags and the days since
// last contact. Pure function; recomputed on every dashboard request, never
// persisted.
//
// "akut" short-circuits to 100/critical regardless of other tags. "ringabak"
// escalates to a forced 50/high once two days pass without an explicit
// follow-up date tag.
func CalculateTagScore(tags []string, daysSinceLastContact int) TagScore {
	if daysSinceLastContact < 0 {
		daysSinceLastContact = 0
	}

	if hasTag(tags, "akut") {
		return TagScore{
			Score:   100,
			Reason:  "Akut ärende, kontakta omedelbart",
			Urgency: UrgencyCritical,
		}
	}

	score := 0
	var reasons []string
	forcedHigh := false

	if hasTag(tags, "problem") {
		contribution := 40 + 5*daysSinceLastContact
		score += contribution
		reasons = append(reasons, fmt.Sprintf("Problem rapporterat för %d dagar sedan", daysSinceLastContact))
	}

	if hasTag(tags, "ringabak") {
		if daysSinceLastContact >= 2 && !hasDateTag(tags) {
			score += 50
			forcedHigh = true
			reasons = append(reasons, "Ring tillbaka, försenad utan planerat datum")
		} else {
			score += 35
			reasons = append(reasons, "Ring tillbaka")
		}
	}

	if hasTag(tags, "hett") {
		contribution := 40 - 3*daysSinceLastContact
		if contribution < 20 {
			contribution = 20
		}
		score += contribution
		reasons = append(reasons, "Het kontakt")
	}

	if hasTag(tags, "kontrakt") {
		score += 30
		reasons = append(reasons, "Kontraktsdiskussion pågår")
	}
	if hasTag(tags, "budget") {
		score += 20
		reasons = append(reasons, "Budget bekräftad")
	}
	if hasTag(tags, "nöjd") {
		score += 10
		reasons = append(reasons, "Nöjd ambassadör")
	}

	urgency := urgencyForScore(score)
	if forcedHigh && urgency != UrgencyCritical {
		urgency = UrgencyHigh
	}

	return TagScore{
		Score:   score,
		Reason:  strings.Join(reasons, "; "),
		Urgency: urgency,
	}
}

func urgencyForScore(score int) string {
	switch {
	case score >= 100:
		return UrgencyCritical
	case score >= 50:
		return UrgencyHigh
	case score >= 25:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// TriggerResult couples a contact to its trigger score for the dashboard.
type TriggerResult struct {
	Contact  *ambassadormodels.Contact `json:"contact"`
	TagScore TagScore                  `json:"tagScore"`
	Score    int                       `json:"score"`
}

// CalculateTriggerScore layers tier and status additions onto the tag score.
func CalculateTriggerScore(contact *ambassadormodels.Contact, tagScore TagScore, daysSinceLastContact int) int {
	score := tagScore.Score

	switch contact.InfluencerTier {
	case ambassadormodels.TierMega:
		score += 15
	case ambassadormodels.TierMacro:
		score += 10
	case ambassadormodels.TierMicro:
		score += 5
	}

	stale := daysSinceLastContact >= staleDays
	switch contact.Status {
	case ambassadormodels.ContactStatusNegotiating:
		score += 25
	case ambassadormodels.ContactStatusContacted:
		if stale {
			score += 20
		}
	case ambassadormodels.ContactStatusProspect:
		if stale {
			score += 15
		}
	}

	return score
}

// stockholmLocation is loaded once; business hours are evaluated in Swedish
// local time.
var stockholmLocation = mustLoadLocation("Europe/Stockholm")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsBusinessHours reports whether t falls inside Mon-Fri 08:00-17:00 Swedish
// time.
func IsBusinessHours(t time.Time) bool {
	local := t.In(stockholmLocation)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	hour := local.Hour()
	return hour >= 8 && hour < 17
}

// FilterTriggers applies the business-hours gate and sorts by score
// descending. During business hours any contact scoring above 15 surfaces,
// capped to the top 3; outside them only contacts above 50 or flagged
// critical do.
func FilterTriggers(results []TriggerResult, now time.Time) []TriggerResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	var out []TriggerResult
	if IsBusinessHours(now) {
		for _, r := range results {
			if r.Score > 15 {
				out = append(out, r)
			}
			if len(out) == 3 {
				break
			}
		}
		return out
	}

	for _, r := range results {
		if r.Score > 50 || r.TagScore.Urgency == UrgencyCritical {
			out = append(out, r)
		}
	}
	return out
}
