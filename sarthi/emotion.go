package sarthi

import "strings"

// EmotionalStateAnalyzer derives a coarse routing signal from raw message
// text. It is a deterministic cascade over phrase tables, not NLU: the goal
// is picking a prompt template, not a diagnosis. Every input maps to exactly
// one Assessment.
type EmotionalStateAnalyzer struct {
	crisisPhrases   []string
	distressPhrases []string
	sadnessPhrases  []string

	guidancePhrases []string
	releasePhrases  []string

	workPhrases         []string
	relationshipPhrases []string

	closeFriendMarkers []string
}

func NewEmotionalStateAnalyzer() *EmotionalStateAnalyzer {
	return &EmotionalStateAnalyzer{
		crisisPhrases: []string{
			"kill myself", "end my life", "end it all", "want to die",
			"hurt myself", "self harm", "no reason to live",
			"can't take it", "cant take it", "give up on life",
			"khatam", "marna chahta", "marna chahti", "jeena nahi",
			"dimag phat", "zindagi khatam",
			"खतम", "मरना चाहता", "मरना चाहती", "जीना नहीं", "आत्महत्या",
		},
		distressPhrases: []string{
			"confused", "help me", "tension", "panic", "anxious",
			"overwhelmed", "can't handle", "cant handle", "stressed",
			"pareshan", "ghabrahat", "dar lag raha",
			"तनाव", "परेशान", "घबराहट", "डर लग रहा",
		},
		sadnessPhrases: []string{
			"sad", "lonely", "alone", "crying", "mood off", "heartbroken",
			"miss her", "miss him", "hopeless", "down today",
			"udaas", "akela", "dukhi", "rona aa raha",
			"उदास", "अकेला", "दुखी", "रोना आ रहा",
		},
		guidancePhrases: []string{
			"what should i do", "what do i do", "advice", "how do i",
			"how should i", "suggest", "kya karoon", "kya karu",
			"kya karna chahiye", "क्या करूं", "क्या करना चाहिए",
		},
		releasePhrases: []string{
			"just want to share", "just need to vent", "need to vent",
			"just listen", "sunna chahoge", "bas batana tha",
			"सुन लो", "बस बताना था",
		},
		workPhrases: []string{
			"work", "office", "boss", "job", "deadline", "salary",
			"career", "interview", "promotion", "naukri", "kaam",
			"नौकरी", "काम", "ऑफिस",
		},
		relationshipPhrases: []string{
			"girlfriend", "boyfriend", "breakup", "broke up", "marriage",
			"wife", "husband", "family", "friend", "mother", "father",
			"rishta", "shaadi", "dost", "रिश्ता", "शादी", "दोस्त",
		},
		closeFriendMarkers: []string{
			"bhai", "yaar", "bro", "dude", "bestie", "tu ", "tujhe", "tere",
		},
	}
}

// Analyze runs the cascade: crisis, then distress, then sadness, then
// neutral. Domain and intimacy are attached independently; explicit
// guidance-seeking or sharing phrases override the cascade's intent.
// Critical intensity is assigned on the crisis branch and nowhere else.
func (a *EmotionalStateAnalyzer) Analyze(message string) Assessment {
	lower := strings.ToLower(message)

	assessment := Assessment{
		PrimaryEmotion: EmotionNeutral,
		Intensity:      IntensityLow,
		Intent:         IntentConversation,
	}

	switch {
	case matchesAny(lower, a.crisisPhrases):
		assessment.PrimaryEmotion = EmotionCrisis
		assessment.Intensity = IntensityCritical
		assessment.Intent = IntentImmediateSupport
	case matchesAny(lower, a.distressPhrases):
		assessment.PrimaryEmotion = EmotionDistressed
		assessment.Intensity = IntensityHigh
		assessment.Intent = IntentSeekingGuidance
	case matchesAny(lower, a.sadnessPhrases):
		assessment.PrimaryEmotion = EmotionSadness
		assessment.Intensity = IntensityModerate
		assessment.Intent = IntentEmotionalSupport
	}

	// Explicit asks trump the cascade, except in a crisis where immediate
	// support always stands.
	if assessment.PrimaryEmotion != EmotionCrisis {
		if matchesAny(lower, a.guidancePhrases) {
			assessment.Intent = IntentSeekingGuidance
		} else if matchesAny(lower, a.releasePhrases) {
			assessment.Intent = IntentEmotionalRelease
		}
	}

	assessment.Domain = a.classifyDomain(lower)
	assessment.Intimacy = a.classifyIntimacy(lower)

	return assessment
}

func (a *EmotionalStateAnalyzer) classifyDomain(lower string) Domain {
	switch {
	case matchesAny(lower, a.workPhrases):
		return DomainWorkCareer
	case matchesAny(lower, a.relationshipPhrases):
		return DomainRelationships
	default:
		return DomainGeneral
	}
}

func (a *EmotionalStateAnalyzer) classifyIntimacy(lower string) IntimacyLevel {
	if matchesAny(lower, a.closeFriendMarkers) {
		return IntimacyCloseFriend
	}
	return IntimacySupportiveFriend
}

func matchesAny(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
