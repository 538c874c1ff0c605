package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreCandidate_FullMatch(t *testing.T) {
	candidate := Candidate{
		CreatorID:    "c1",
		Skills:       []string{"Editor", "Colorist"},
		Location:     "Berlin",
		Availability: "weekends",
	}
	criteria := Criteria{
		NeededRoles:  []string{"Editor", "Colorist"},
		LocationPref: "Berlin",
		Availability: "weekends",
	}

	score, reasons := ScoreCandidate(candidate, criteria, DefaultWeights)

	assert.InDelta(t, 1.0, score, 1e-9)
	assert.Contains(t, reasons, "Has 2/2 required skills")
	assert.Contains(t, reasons, "Local collaborator")
	assert.Contains(t, reasons, "Available when needed")
}

func TestScoreCandidate_PartialSkills(t *testing.T) {
	candidate := Candidate{Skills: []string{"Editor"}}
	criteria := Criteria{NeededRoles: []string{"Editor", "Sound Designer"}}

	score, reasons := ScoreCandidate(candidate, criteria, DefaultWeights)

	assert.InDelta(t, 0.3, score, 1e-9) // 0.6 * 1/2
	assert.Equal(t, []string{"Has 1/2 required skills"}, reasons)
}

func TestScoreCandidate_NoOverlap(t *testing.T) {
	candidate := Candidate{Skills: []string{"Animator"}, Location: "Oslo"}
	criteria := Criteria{NeededRoles: []string{"Composer"}, LocationPref: "Berlin"}

	score, reasons := ScoreCandidate(candidate, criteria, DefaultWeights)

	assert.Zero(t, score)
	assert.Empty(t, reasons)
}

func TestScoreCandidate_CaseInsensitiveSkills(t *testing.T) {
	candidate := Candidate{Skills: []string{"editor"}}
	criteria := Criteria{NeededRoles: []string{"Editor"}}

	score, _ := ScoreCandidate(candidate, criteria, DefaultWeights)
	assert.InDelta(t, 0.6, score, 1e-9)
}

func TestScoreCandidate_CustomTags(t *testing.T) {
	candidate := Candidate{Skills: []string{"custom:Foley Artist"}}
	criteria := Criteria{NeededRoles: []string{"custom:foley artist"}}

	score, _ := ScoreCandidate(candidate, criteria, DefaultWeights)
	assert.InDelta(t, 0.6, score, 1e-9)
}

func TestScoreCandidate_FlexibleAvailability(t *testing.T) {
	candidate := Candidate{Skills: []string{"Editor"}, Availability: "flexible"}
	criteria := Criteria{NeededRoles: []string{"Editor"}, Availability: "evenings"}

	_, reasons := ScoreCandidate(candidate, criteria, DefaultWeights)
	assert.Contains(t, reasons, "Available when needed")
}

func TestScoreCandidate_DuplicateNeededRolesCountOnce(t *testing.T) {
	candidate := Candidate{Skills: []string{"Editor"}}
	criteria := Criteria{NeededRoles: []string{"Editor", "editor", "Editor"}}

	score, reasons := ScoreCandidate(candidate, criteria, DefaultWeights)
	assert.InDelta(t, 0.6, score, 1e-9)
	assert.Equal(t, []string{"Has 1/1 required skills"}, reasons)
}

func TestScoreCandidate_Deterministic(t *testing.T) {
	candidate := Candidate{
		Skills:       []string{"Editor", "Writer"},
		Location:     "Paris",
		Availability: "weekdays",
	}
	criteria := Criteria{
		NeededRoles:  []string{"Editor", "Composer", "Writer"},
		LocationPref: "paris",
		Availability: "weekdays",
	}

	first, firstReasons := ScoreCandidate(candidate, criteria, DefaultWeights)
	for i := 0; i < 50; i++ {
		score, reasons := ScoreCandidate(candidate, criteria, DefaultWeights)
		require.Equal(t, first, score)
		require.Equal(t, firstReasons, reasons)
	}
}

func TestApplyFairnessPenalty(t *testing.T) {
	assert.InDelta(t, 0.8, ApplyFairnessPenalty(0.8, 0, 0.3), 1e-9)
	assert.InDelta(t, 0.68, ApplyFairnessPenalty(0.8, 0.5, 0.3), 1e-9)
	assert.InDelta(t, 0.56, ApplyFairnessPenalty(0.8, 1, 0.3), 1e-9)
	// penalty is capped at 1
	assert.InDelta(t, 0.56, ApplyFairnessPenalty(0.8, 5, 0.3), 1e-9)
	assert.GreaterOrEqual(t, ApplyFairnessPenalty(0.1, 1, 1), 0.0)
}

func TestRank_ScoreDescThenRegSeqAsc(t *testing.T) {
	scored := []Scored{
		{Candidate: Candidate{CreatorID: "late", RegSeq: 30}, Score: 0.9},
		{Candidate: Candidate{CreatorID: "early", RegSeq: 10}, Score: 0.9},
		{Candidate: Candidate{CreatorID: "top", RegSeq: 99}, Score: 0.95},
		{Candidate: Candidate{CreatorID: "mid", RegSeq: 20}, Score: 0.9},
	}

	Rank(scored)

	got := make([]string, 0, len(scored))
	for _, s := range scored {
		got = append(got, s.Candidate.CreatorID)
	}
	assert.Equal(t, []string{"top", "early", "mid", "late"}, got)
}

func TestWeights_Normalization(t *testing.T) {
	w := Weights{Skill: 6, Location: 2, Availability: 2}.normalized()
	assert.InDelta(t, 0.6, w.Skill, 1e-9)
	assert.InDelta(t, 0.2, w.Location, 1e-9)
	assert.InDelta(t, 0.2, w.Availability, 1e-9)

	zero := Weights{}.normalized()
	assert.Equal(t, DefaultWeights, zero)
}
