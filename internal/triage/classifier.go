package triage

import (
	"regexp"
	"strconv"
	"strings"
)

// Analysis carries the classifier's supporting evidence alongside the
// severity and score. It is stored on the appointment at booking time
// and is only changed afterwards by an explicit manual override.
type Analysis struct {
	DetectedConditions []string `json:"detected_conditions"`
	UrgencyIndicators  []string `json:"urgency_indicators"`
	RecommendedAction  string   `json:"recommended_action"`
	Confidence         int      `json:"confidence"`
}

// Classification is the full result of classifying one complaint.
type Classification struct {
	Severity  Severity `json:"severity"`
	RiskScore int      `json:"risk_score"`
	Analysis  Analysis `json:"ai_analysis"`
}

// maxDetectedConditions caps how many matched keywords are reported.
const maxDetectedConditions = 5

// tierRule maps a keyword table to a base risk score. Rules are
// evaluated in declaration order and evaluation stops at the first
// tier with any match, so a complaint matching both "chest pain" and
// "fever" is scored as critical, never double-counted.
type tierRule struct {
	severity Severity
	base     int
	keywords []string
}

var tierRules = []tierRule{
	{
		severity: SeverityCritical,
		base:     80,
		keywords: []string{
			"chest pain", "heart attack", "stroke", "not breathing",
			"difficulty breathing", "shortness of breath", "unconscious",
			"severe bleeding", "seizure", "anaphylaxis", "overdose",
			"choking", "paralysis", "coughing blood", "suicidal",
		},
	},
	{
		severity: SeverityHigh,
		base:     50,
		keywords: []string{
			"high fever", "broken bone", "fracture", "deep cut",
			"severe pain", "head injury", "severe burn", "dehydration",
			"allergic reaction", "severe vomiting", "blood in stool",
			"blood in urine", "fainting", "severe headache",
		},
	},
	{
		severity: SeverityMedium,
		base:     25,
		keywords: []string{
			"fever", "vomiting", "diarrhea", "migraine", "infection",
			"sprain", "burn", "abdominal pain", "stomach pain",
			"back pain", "dizziness", "ear pain", "toothache",
			"urinary", "swelling",
		},
	},
	{
		severity: SeverityLow,
		base:     10,
		keywords: []string{
			"cold", "cough", "sore throat", "runny nose", "headache",
			"rash", "itching", "fatigue", "checkup", "check-up",
			"follow up", "follow-up", "prescription", "vaccination",
			"mild",
		},
	},
}

// modifierRule contributes additive points and a human-readable
// indicator label when its pattern appears anywhere in the text.
// Modifiers are evaluated exhaustively and independently of the tier
// match.
type modifierRule struct {
	points    int
	indicator string
	patterns  []string
}

var modifierRules = []modifierRule{
	{15, "Sudden onset", []string{"sudden", "suddenly", "out of nowhere", "all of a sudden"}},
	{15, "Worsening condition", []string{"worse", "worsening", "getting bad", "deteriorating", "spreading"}},
	{10, "Recurring problem", []string{"again", "recurring", "keeps coming back", "repeatedly", "came back"}},
	{5, "Chronic condition", []string{"chronic", "long term", "long-term", "for years", "for months"}},
	{5, "First occurrence", []string{"first time", "never had", "never happened"}},
	{20, "Pregnancy", []string{"pregnant", "pregnancy", "expecting a baby"}},
	{10, "Pediatric patient", []string{"baby", "infant", "toddler", "my child", "year old child"}},
	{10, "Geriatric patient", []string{"elderly", "senior citizen", "my mother is old", "my father is old"}},
	{10, "Diabetic history", []string{"diabetes", "diabetic"}},
	{15, "Cardiac history", []string{"heart condition", "heart disease", "cardiac", "pacemaker", "hypertension"}},
	{10, "Respiratory history", []string{"asthma", "asthmatic", "copd"}},
	{20, "Immunocompromised", []string{"immunocompromised", "chemotherapy", "transplant", "hiv"}},
}

var daysPattern = regexp.MustCompile(`(\d+)\s*days?`)

// Classify converts a free-text complaint plus selected symptoms into
// a severity tier, a 0-100 risk score and the supporting analysis.
// Pure and deterministic: identical input always yields identical
// output, and it never fails — empty or unrecognized input degrades
// to a low-severity, zero-score result.
func Classify(healthProblem string, symptoms []string) Classification {
	text := normalize(healthProblem, symptoms)

	base, conditions := matchTier(text)
	modifierPoints, indicators := matchModifiers(text)

	score := base + modifierPoints
	if score > 100 {
		score = 100
	}

	severity := SeverityFromScore(score)

	confidence := 50 + 10*(len(conditions)+len(indicators))
	if confidence > 95 {
		confidence = 95
	}

	return Classification{
		Severity:  severity,
		RiskScore: score,
		Analysis: Analysis{
			DetectedConditions: conditions,
			UrgencyIndicators:  indicators,
			RecommendedAction:  RecommendedAction(severity),
			Confidence:         confidence,
		},
	}
}

func normalize(healthProblem string, symptoms []string) string {
	parts := make([]string, 0, len(symptoms)+1)
	parts = append(parts, healthProblem)
	parts = append(parts, symptoms...)
	return strings.ToLower(strings.Join(parts, " "))
}

// matchTier finds the highest-priority tier with any keyword match and
// returns its base score plus the matched keywords, title-cased and
// capped at maxDetectedConditions uniques. No match leaves the base at
// zero, which the score derivation floors to low severity.
func matchTier(text string) (int, []string) {
	for _, rule := range tierRules {
		var matched []string
		seen := make(map[string]struct{})
		for _, kw := range rule.keywords {
			if !strings.Contains(text, kw) {
				continue
			}
			title := titleCase(kw)
			if _, ok := seen[title]; ok {
				continue
			}
			seen[title] = struct{}{}
			matched = append(matched, title)
			if len(matched) == maxDetectedConditions {
				break
			}
		}
		if len(matched) > 0 {
			return rule.base, matched
		}
	}
	return 0, nil
}

func matchModifiers(text string) (int, []string) {
	points := 0
	var indicators []string
	seen := make(map[string]struct{})

	add := func(p int, label string) {
		if _, ok := seen[label]; ok {
			return
		}
		seen[label] = struct{}{}
		points += p
		indicators = append(indicators, label)
	}

	for _, rule := range modifierRules {
		for _, pattern := range rule.patterns {
			if strings.Contains(text, pattern) {
				add(rule.points, rule.indicator)
				break
			}
		}
	}

	if m := daysPattern.FindStringSubmatch(text); m != nil {
		if days, err := strconv.Atoi(m[1]); err == nil {
			switch {
			case days >= 7:
				add(20, "Symptoms persisting a week or more")
			case days >= 3:
				add(10, "Symptoms persisting several days")
			default:
				add(5, "Recent symptom duration mentioned")
			}
		}
	}

	return points, indicators
}

// titleCase uppercases the first letter of each space-separated word.
// strings.Title is deprecated and the keyword tables are plain ASCII,
// so a minimal version is enough.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
