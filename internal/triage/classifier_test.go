package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySuddenChestPain(t *testing.T) {
	// Critical keyword (base 80) + sudden onset (+15) + 2-day duration (+5),
	// capped at 100.
	result := Classify("Sudden severe chest pain for 2 days", nil)

	assert.Equal(t, 100, result.RiskScore)
	assert.Equal(t, SeverityCritical, result.Severity)
	assert.Contains(t, result.Analysis.DetectedConditions, "Chest Pain")
	assert.Contains(t, result.Analysis.UrgencyIndicators, "Sudden onset")
	assert.Contains(t, result.Analysis.UrgencyIndicators, "Recent symptom duration mentioned")
}

func TestClassifyTierPriority(t *testing.T) {
	// A complaint matching both a critical and a lower-tier keyword is
	// scored against the critical table only.
	result := Classify("chest pain and a mild cough", nil)

	assert.Equal(t, SeverityCritical, result.Severity)
	assert.GreaterOrEqual(t, result.RiskScore, 80)
	assert.Contains(t, result.Analysis.DetectedConditions, "Chest Pain")
	assert.NotContains(t, result.Analysis.DetectedConditions, "Cough")
}

func TestClassifyEmptyInput(t *testing.T) {
	result := Classify("", nil)

	assert.Equal(t, SeverityLow, result.Severity)
	assert.Equal(t, 0, result.RiskScore)
	assert.Empty(t, result.Analysis.DetectedConditions)
	assert.Empty(t, result.Analysis.UrgencyIndicators)
	assert.Equal(t, 50, result.Analysis.Confidence)
}

func TestClassifyGarbageInput(t *testing.T) {
	result := Classify("zzzzzz qwerty 👾", []string{"asdf"})

	assert.Equal(t, SeverityLow, result.Severity)
	assert.Equal(t, 0, result.RiskScore)
}

func TestClassifyModifiersCanEscalateTier(t *testing.T) {
	// A low-tier keyword plus enough additive modifiers crosses the
	// medium threshold; the reported severity comes from the final
	// score, not the matched tier.
	result := Classify("recurring rash, getting worse", nil)

	// base 10 + recurring 10 + worsening 15 = 35
	assert.Equal(t, 35, result.RiskScore)
	assert.Equal(t, SeverityMedium, result.Severity)
}

func TestClassifyModifiersAloneNeedThreshold(t *testing.T) {
	// No keyword match keeps the base at zero; modifiers alone only
	// escalate past low when they sum to 25 or more.
	small := Classify("it started 2 days ago", nil)
	assert.Equal(t, 5, small.RiskScore)
	assert.Equal(t, SeverityLow, small.Severity)

	large := Classify("I am pregnant and it suddenly started", nil)
	// pregnancy 20 + sudden 15 = 35
	assert.Equal(t, 35, large.RiskScore)
	assert.Equal(t, SeverityMedium, large.Severity)
}

func TestClassifySymptomsContribute(t *testing.T) {
	result := Classify("feeling unwell", []string{"high fever", "vomiting"})

	assert.Equal(t, SeverityHigh, result.Severity)
	assert.Contains(t, result.Analysis.DetectedConditions, "High Fever")
}

func TestClassifyDurationBuckets(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantScore int
	}{
		{"under three days", "headache for 2 days", 15},
		{"several days", "headache for 4 days", 20},
		{"a week or more", "headache for 10 days", 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.text, nil)
			assert.Equal(t, tt.wantScore, result.RiskScore)
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	first := Classify("sudden chest pain, diabetic, 5 days", []string{"dizziness"})
	second := Classify("sudden chest pain, diabetic, 5 days", []string{"dizziness"})
	assert.Equal(t, first, second)
}

func TestClassifyScoreBounds(t *testing.T) {
	inputs := []string{
		"",
		"chest pain stroke seizure overdose pregnant immunocompromised sudden worse again chronic 30 days",
		"mild cold",
		"100 days of everything",
	}
	for _, in := range inputs {
		result := Classify(in, nil)
		assert.GreaterOrEqual(t, result.RiskScore, 0, "input %q", in)
		assert.LessOrEqual(t, result.RiskScore, 100, "input %q", in)
		assert.Equal(t, SeverityFromScore(result.RiskScore), result.Severity, "input %q", in)
	}
}

func TestClassifyDetectedConditionsCapped(t *testing.T) {
	result := Classify("chest pain, heart attack, stroke, seizure, overdose, choking, anaphylaxis", nil)
	require.LessOrEqual(t, len(result.Analysis.DetectedConditions), 5)
}

func TestClassifyConfidenceCapped(t *testing.T) {
	result := Classify(
		"sudden worsening recurring chronic chest pain, pregnant, diabetic, asthma, heart condition, immunocompromised, 10 days",
		[]string{"stroke", "seizure"},
	)
	assert.LessOrEqual(t, result.Analysis.Confidence, 95)
	assert.GreaterOrEqual(t, result.Analysis.Confidence, 50)
}

func TestSeverityFromScore(t *testing.T) {
	tests := []struct {
		score int
		want  Severity
	}{
		{0, SeverityLow},
		{24, SeverityLow},
		{25, SeverityMedium},
		{49, SeverityMedium},
		{50, SeverityHigh},
		{79, SeverityHigh},
		{80, SeverityCritical},
		{100, SeverityCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeverityFromScore(tt.score), "score %d", tt.score)
	}
}

func TestSeverityRankOrdering(t *testing.T) {
	assert.Greater(t, SeverityCritical.Rank(), SeverityHigh.Rank())
	assert.Greater(t, SeverityHigh.Rank(), SeverityMedium.Rank())
	assert.Greater(t, SeverityMedium.Rank(), SeverityLow.Rank())
	assert.Greater(t, SeverityLow.Rank(), Severity("bogus").Rank())
	assert.False(t, Severity("bogus").Valid())
}
