package sarthi

import (
	"time"

	"golang.org/x/text/language"
)

// Language is the register Sarthi replies in. Hinglish is romanized,
// code-mixed Hindi-English.
type Language string

const (
	LanguageEnglish  Language = "English"
	LanguageHindi    Language = "Hindi"
	LanguageHinglish Language = "Hinglish"
)

var hinglishTag = language.MustParse("hi-Latn")

// Tag returns the BCP 47 tag for the language. Hinglish is Hindi in Latin
// script.
func (l Language) Tag() language.Tag {
	switch l {
	case LanguageHindi:
		return language.Hindi
	case LanguageHinglish:
		return hinglishTag
	default:
		return language.English
	}
}

type Emotion string

const (
	EmotionNeutral    Emotion = "neutral"
	EmotionSadness    Emotion = "sadness"
	EmotionDistressed Emotion = "distressed"
	EmotionCrisis     Emotion = "crisis"
)

type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityModerate Intensity = "moderate"
	IntensityHigh     Intensity = "high"
	IntensityCritical Intensity = "critical"
)

type Intent string

const (
	IntentConversation     Intent = "conversation"
	IntentSeekingGuidance  Intent = "seeking_guidance"
	IntentEmotionalSupport Intent = "emotional_support"
	IntentEmotionalRelease Intent = "emotional_release"
	IntentImmediateSupport Intent = "immediate_support"
)

type IntimacyLevel string

const (
	IntimacyCloseFriend      IntimacyLevel = "close_friend"
	IntimacySupportiveFriend IntimacyLevel = "supportive_friend"
)

type Domain string

const (
	DomainWorkCareer    Domain = "work_career"
	DomainRelationships Domain = "relationships"
	DomainGeneral       Domain = "general"
)

// Assessment is the coarse routing signal derived from a single message.
// Invariant: Intensity is IntensityCritical exactly when PrimaryEmotion is
// EmotionCrisis.
type Assessment struct {
	PrimaryEmotion Emotion
	Intensity      Intensity
	Intent         Intent
	Intimacy       IntimacyLevel
	Domain         Domain
}

type Strategy string

const (
	StrategyCrisisSupport     Strategy = "crisis_support"
	StrategyPracticalGuidance Strategy = "practical_guidance"
	StrategyEmotionalSupport  Strategy = "emotional_support"
	StrategyFriendlyChat      Strategy = "friendly_chat"
)

// Message is one conversation turn, most-recent-last in any slice.
type Message struct {
	Role    string
	Content string
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type MoodEntry struct {
	Mood       string
	Domain     string
	RecordedAt time.Time
}

type Checkin struct {
	WellnessScore   int
	StressScore     int
	Mood            string
	StressedDomains []string
}

type Profile struct {
	FirstName          string
	LanguagePreference string
}

// ConversationContext is everything recalled for one chat turn. Every field
// may be empty; absence never blocks a reply.
type ConversationContext struct {
	UserID           string
	RecentMessages   []Message
	EmotionalHistory []MoodEntry
	LatestCheckin    *Checkin
	Profile          Profile
}

// Verdict is the critic's read on a candidate completion.
type Verdict struct {
	IsGeneric       bool
	IsWrongLanguage bool
}

// Flagged reports whether the candidate needs one corrective regeneration.
func (v Verdict) Flagged() bool {
	return v.IsGeneric || v.IsWrongLanguage
}

type Reply struct {
	Content  string
	Language Language
}
