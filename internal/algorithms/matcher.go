package algorithms

import (
	"fmt"
	"sort"
	"strings"

	"creatordna_backend/internal/models"
)

// Weights controls how each matching dimension contributes to the
// final score. Weights are normalized before use so callers may pass
// any positive values.
type Weights struct {
	Skill        float64
	Location     float64
	Availability float64
}

// DefaultWeights mirrors the production matching profile.
var DefaultWeights = Weights{Skill: 0.6, Location: 0.2, Availability: 0.2}

func (w Weights) normalized() Weights {
	sum := w.Skill + w.Location + w.Availability
	if sum <= 0 {
		return DefaultWeights
	}
	return Weights{
		Skill:        w.Skill / sum,
		Location:     w.Location / sum,
		Availability: w.Availability / sum,
	}
}

// Candidate is a scoring view of a creator profile. RegSeq is the
// profile's registration sequence number, used as the deterministic
// tie-breaker (earlier registration wins).
type Candidate struct {
	CreatorID    string
	Skills       []string
	Location     string
	Availability string
	RegSeq       int64
}

// Criteria is the scoring view of a collaboration request.
type Criteria struct {
	NeededRoles  []string
	LocationPref string
	Availability string
}

// Scored is a candidate with its computed score and explanation.
type Scored struct {
	Candidate Candidate
	Score     float64
	Reasons   []string
}

// ScoreCandidate computes a match score in [0,1] for one candidate
// against the request criteria, along with human-readable reasons.
// Pure function: same inputs always produce the same output.
func ScoreCandidate(c Candidate, crit Criteria, w Weights) (float64, []string) {
	w = w.normalized()

	var score float64
	var reasons []string

	matched, total := skillOverlap(c.Skills, crit.NeededRoles)
	if total > 0 {
		ratio := float64(matched) / float64(total)
		score += w.Skill * ratio
		if matched > 0 {
			reasons = append(reasons, fmt.Sprintf("Has %d/%d required skills", matched, total))
		}
	}

	if crit.LocationPref != "" && sameLocation(c.Location, crit.LocationPref) {
		score += w.Location
		reasons = append(reasons, "Local collaborator")
	}

	if crit.Availability != "" && availabilityCompatible(c.Availability, crit.Availability) {
		score += w.Availability
		reasons = append(reasons, "Available when needed")
	}

	return clamp01(score), reasons
}

// ApplyFairnessPenalty down-weights a score by the candidate's recent
// proposal load. penalty is in [0,1]: 0 leaves the score untouched,
// 1 removes up to `weight` of it. Never changes score sign or range.
func ApplyFairnessPenalty(score, penalty, weight float64) float64 {
	if penalty <= 0 || weight <= 0 {
		return clamp01(score)
	}
	if penalty > 1 {
		penalty = 1
	}
	return clamp01(score * (1 - weight*penalty))
}

// Rank sorts scored candidates by score descending, then by
// registration sequence ascending. The order is total, so repeated
// runs over the same inputs yield the same ranking.
func Rank(scored []Scored) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Candidate.RegSeq < scored[j].Candidate.RegSeq
	})
}

// HasSkillOverlap reports whether the candidate covers at least one
// needed role. Candidates without any overlap are not eligible.
func HasSkillOverlap(skills, needed []string) bool {
	matched, _ := skillOverlap(skills, needed)
	return matched > 0
}

func skillOverlap(skills, needed []string) (matched, total int) {
	if len(needed) == 0 {
		return 0, 0
	}
	have := make(map[string]bool, len(skills))
	for _, s := range skills {
		have[models.NormalizeTag(s)] = true
	}
	seen := make(map[string]bool, len(needed))
	for _, n := range needed {
		key := models.NormalizeTag(n)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		total++
		if have[key] {
			matched++
		}
	}
	return matched, total
}

func sameLocation(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	return a != "" && a == b
}

// availabilityCompatible treats "flexible" on either side as a wildcard.
func availabilityCompatible(have, want string) bool {
	have = strings.ToLower(strings.TrimSpace(have))
	want = strings.ToLower(strings.TrimSpace(want))
	if have == "" {
		return false
	}
	if have == "flexible" || want == "flexible" {
		return true
	}
	return have == want
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
