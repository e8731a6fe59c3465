package vision

import "strings"

// Principle is an interpretive rule with its supporting passages.
type Principle struct {
	Name        string   `json:"principle"`
	Description string   `json:"description"`
	References  []string `json:"references"`
}

// GuidanceTopic is a prayer or counsel topic anchored on one passage.
type GuidanceTopic struct {
	Topic     string `json:"topic"`
	Scripture string `json:"scripture"`
	Text      string `json:"text,omitempty"`
	Prayer    string `json:"prayer,omitempty"`
	Guidance  string `json:"guidance,omitempty"`
}

// PrayerGuidance walks the reader through preparing, interpreting and
// applying. Specific is set when the submission context asks for it.
type PrayerGuidance struct {
	Preparation    []GuidanceTopic `json:"preparation"`
	Interpretation []GuidanceTopic `json:"interpretation"`
	Application    []GuidanceTopic `json:"application"`
	Specific       *GuidanceTopic  `json:"specific,omitempty"`
}

var preparationTopics = []GuidanceTopic{
	{
		Topic:     "Seeking Wisdom",
		Scripture: "James 1:5-6",
		Text:      "If any of you lacks wisdom, let him ask God, who gives generously to all without reproach, and it will be given him. But let him ask in faith, with no doubting.",
		Prayer:    "Lord, grant me wisdom to understand the spiritual significance of this vision.",
	},
	{
		Topic:     "Spiritual Discernment",
		Scripture: "1 John 4:1",
		Text:      "Beloved, do not believe every spirit, but test the spirits to see whether they are from God.",
		Prayer:    "Holy Spirit, help me discern the true meaning and source of this vision.",
	},
	{
		Topic:     "Open Eyes",
		Scripture: "Ephesians 1:17-18",
		Text:      "That the God of our Lord Jesus Christ, the Father of glory, may give you the Spirit of wisdom and of revelation in the knowledge of him, having the eyes of your hearts enlightened.",
		Prayer:    "Father, open the eyes of my heart to understand Your revelation.",
	},
	{
		Topic:     "Divine Guidance",
		Scripture: "John 16:13",
		Text:      "When the Spirit of truth comes, he will guide you into all the truth.",
		Prayer:    "Spirit of Truth, guide me into all truth regarding this vision.",
	},
}

var interpretationTopics = []GuidanceTopic{
	{
		Topic:     "Testing Against Scripture",
		Scripture: "2 Timothy 3:16-17",
		Text:      "All Scripture is breathed out by God and profitable for teaching, for reproof, for correction, and for training in righteousness.",
		Guidance:  "Compare all interpretations with Biblical truth.",
	},
	{
		Topic:     "Spiritual Counsel",
		Scripture: "Proverbs 11:14",
		Text:      "Where there is no guidance, a people falls, but in an abundance of counselors there is safety.",
		Guidance:  "Seek wisdom from mature spiritual leaders.",
	},
	{
		Topic:     "Patient Waiting",
		Scripture: "Psalm 27:14",
		Text:      "Wait for the Lord; be strong, and let your heart take courage; wait for the Lord!",
		Guidance:  "Be patient in seeking understanding.",
	},
}

var applicationTopics = []GuidanceTopic{
	{
		Topic:     "Walking in Truth",
		Scripture: "3 John 1:4",
		Text:      "I have no greater joy than to hear that my children are walking in the truth.",
		Guidance:  "Apply understanding in alignment with God's Word.",
	},
	{
		Topic:     "Faith and Action",
		Scripture: "James 2:17",
		Text:      "Faith by itself, if it does not have works, is dead.",
		Guidance:  "Let understanding lead to faithful action.",
	},
	{
		Topic:     "God's Timing",
		Scripture: "Ecclesiastes 3:1",
		Text:      "For everything there is a season, and a time for every matter under heaven.",
		Guidance:  "Trust God's timing in revealing understanding.",
	},
}

var (
	urgentGuidance = GuidanceTopic{
		Topic:     "Seeking Clear Direction",
		Scripture: "James 1:5-8",
		Prayer:    urgentContextPrayer,
	}
	confusedGuidance = GuidanceTopic{
		Topic:     "Clarity and Understanding",
		Scripture: "Psalm 119:18",
		Prayer:    confusedContextPrayer,
	}
)

var corePrinciples = []Principle{
	{"Scripture Primacy", "All interpretation must align with Scripture", []string{"2 Timothy 3:16-17", "2 Peter 1:20-21"}},
	{"Holy Spirit Guidance", "Rely on the Holy Spirit's guidance in understanding", []string{"John 16:13", "1 Corinthians 2:10-13"}},
	{"Multiple Witnesses", "Seek confirmation through multiple scripture passages", []string{"2 Corinthians 13:1", "Deuteronomy 19:15"}},
	{"Context Matters", "Consider both biblical and personal context", []string{"2 Peter 1:20", "Acts 2:17"}},
}

var warningPrinciples = []Principle{
	{"Test Everything", "Test all interpretations against Scripture", []string{"1 Thessalonians 5:20-21", "1 John 4:1"}},
	{"Humility Required", "Approach interpretation with humility", []string{"James 4:6", "1 Peter 5:5"}},
	{"Avoid Speculation", "Stay grounded in Scripture, avoid mere speculation", []string{"2 Timothy 2:23", "1 Timothy 1:4"}},
}

var growthPrinciples = []Principle{
	{"Personal Growth", "Visions should contribute to spiritual growth", []string{"2 Peter 3:18", "Ephesians 4:15"}},
	{"Fruit Bearing", "True understanding leads to spiritual fruit", []string{"Matthew 7:15-20", "Galatians 5:22-23"}},
}

var (
	warningWords = []string{"warning", "danger", "caution"}
	growthWords  = []string{"growth", "learn", "develop"}
)

// generalGuidance closes every stored interpretation.
var generalGuidance = []string{
	"Always test interpretations against Scripture",
	"Seek confirmation through prayer and spiritual counsel",
	"Consider the broader context of your spiritual journey",
	"Remember that understanding may come gradually",
}

// RelevantPrinciples returns the core interpretation principles, followed by
// the warning principles when the text speaks of warning, danger or caution
// and the growth principles when it speaks of growth, learning or
// development.
func RelevantPrinciples(text string) []Principle {
	lower := strings.ToLower(text)
	out := clonePrinciples(nil, corePrinciples)
	if containsAny(lower, warningWords) {
		out = clonePrinciples(out, warningPrinciples)
	}
	if containsAny(lower, growthWords) {
		out = clonePrinciples(out, growthPrinciples)
	}
	return out
}

// GuidanceFor returns the prayer guidance for a submission context.
func GuidanceFor(context string) PrayerGuidance {
	return PrayerGuidance{
		Preparation:    append([]GuidanceTopic(nil), preparationTopics...),
		Interpretation: append([]GuidanceTopic(nil), interpretationTopics...),
		Application:    append([]GuidanceTopic(nil), applicationTopics...),
		Specific:       specificGuidance(context),
	}
}

// specificGuidance matches urgent requests before confused ones.
func specificGuidance(context string) *GuidanceTopic {
	ctx := strings.ToLower(context)
	var g GuidanceTopic
	switch {
	case strings.Contains(ctx, "urgent") || strings.Contains(ctx, "important"):
		g = urgentGuidance
	case strings.Contains(ctx, "confused") || strings.Contains(ctx, "unclear"):
		g = confusedGuidance
	default:
		return nil
	}
	return &g
}

func clonePrinciples(dst, src []Principle) []Principle {
	for _, p := range src {
		p.References = append([]string(nil), p.References...)
		dst = append(dst, p)
	}
	return dst
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
