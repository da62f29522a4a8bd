// Package message picks finish and support messages. Finish messages carry
// optional threshold tags: [A<n>] gates on the finished session's minutes,
// [B<n>] on the logical day's accumulated minutes, and a bare leading [<n>]
// is a legacy A tag. Untagged messages behave as [A60] and double as the
// fallback pool when no tagged message qualifies.
package message

import (
	"math/rand"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultFinishMessage is returned when no candidate survives selection.
const DefaultFinishMessage = "Good work today!"

// DefaultFinishMessages seeds the finish pool until master data arrives.
var DefaultFinishMessages = []string{
	"Good work today!",
	"[A30]Thirty solid minutes. Keep it up!",
	"[A60]A full hour of focus. Well done!",
	"[B120]Two hours on the board today!",
	"[B240]Four hours today. Outstanding!",
}

// DefaultSupportMessages seeds the in-session rotation.
var DefaultSupportMessages = []string{
	"Keep going!",
	"Stay focused!",
	"One step at a time.",
	"You're doing great.",
	"Deep breath, back to it.",
}

var (
	tagA      = regexp.MustCompile(`\[A(\d+)\]`)
	tagB      = regexp.MustCompile(`\[B(\d+)\]`)
	tagLegacy = regexp.MustCompile(`^\[(\d+)\]`)
	tagAny    = regexp.MustCompile(`\[[AB]?\d+\]`)
)

// intn is swapped out by tests to pin tie-breaking.
var intn = rand.Intn

// Candidate is a finish message with its parsed thresholds.
type Candidate struct {
	Text       string
	ThresholdA int
	ThresholdB int
	Tagged     bool
}

// Parse extracts thresholds from a raw finish message.
func Parse(raw string) Candidate {
	c := Candidate{Text: raw}
	if m := tagA.FindStringSubmatch(raw); m != nil {
		c.ThresholdA, _ = strconv.Atoi(m[1])
		c.Tagged = true
	}
	if m := tagB.FindStringSubmatch(raw); m != nil {
		c.ThresholdB, _ = strconv.Atoi(m[1])
		c.Tagged = true
	}
	if !c.Tagged {
		if m := tagLegacy.FindStringSubmatch(raw); m != nil {
			c.ThresholdA, _ = strconv.Atoi(m[1])
			c.Tagged = true
		}
	}
	if !c.Tagged {
		c.ThresholdA = 60
	}
	return c
}

// Select chooses a finish message for a session of sessionMinutes with
// todayTotalMinutes accumulated on the logical day. Qualifying candidates
// are ranked by combined threshold, strictest first; ties are broken
// uniformly at random. When nothing qualifies the untagged pool is used,
// and failing that the fixed default.
func Select(raw []string, sessionMinutes, todayTotalMinutes int) string {
	var qualified, untagged []Candidate
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		c := Parse(s)
		if !c.Tagged {
			untagged = append(untagged, c)
		}
		if sessionMinutes >= c.ThresholdA && todayTotalMinutes >= c.ThresholdB {
			qualified = append(qualified, c)
		}
	}
	pool := qualified
	if len(pool) == 0 {
		pool = untagged
	}
	if len(pool) == 0 {
		return DefaultFinishMessage
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].ThresholdA+pool[i].ThresholdB > pool[j].ThresholdA+pool[j].ThresholdB
	})
	top := pool[0].ThresholdA + pool[0].ThresholdB
	n := 1
	for n < len(pool) && pool[n].ThresholdA+pool[n].ThresholdB == top {
		n++
	}
	pick := pool[intn(n)]
	return strings.TrimSpace(tagAny.ReplaceAllString(pick.Text, ""))
}

// Support picks a random support message for the rotation tick, falling
// back to the built-in defaults when the list is empty.
func Support(messages []string) string {
	pool := make([]string, 0, len(messages))
	for _, s := range messages {
		if strings.TrimSpace(s) != "" {
			pool = append(pool, s)
		}
	}
	if len(pool) == 0 {
		pool = DefaultSupportMessages
	}
	return pool[intn(len(pool))]
}
