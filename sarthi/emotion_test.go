package sarthi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeCascade(t *testing.T) {
	a := NewEmotionalStateAnalyzer()

	tests := []struct {
		name          string
		message       string
		wantEmotion   Emotion
		wantIntensity Intensity
		wantIntent    Intent
	}{
		{"empty message is neutral", "", EmotionNeutral, IntensityLow, IntentConversation},
		{"small talk is neutral", "watched a great movie yesterday", EmotionNeutral, IntensityLow, IntentConversation},
		{"crisis english", "i can't take it anymore", EmotionCrisis, IntensityCritical, IntentImmediateSupport},
		{"crisis romanized hindi", "bhai dimag phat raha hai", EmotionCrisis, IntensityCritical, IntentImmediateSupport},
		{"crisis devanagari", "सब खतम कर देना चाहता हूं", EmotionCrisis, IntensityCritical, IntentImmediateSupport},
		{"distress keyword", "so much tension at work", EmotionDistressed, IntensityHigh, IntentSeekingGuidance},
		{"distress devanagari", "बहुत तनाव है", EmotionDistressed, IntensityHigh, IntentSeekingGuidance},
		{"sadness keyword", "feeling really lonely tonight", EmotionSadness, IntensityModerate, IntentEmotionalSupport},
		{"sadness hinglish", "mood off hai yaar", EmotionSadness, IntensityModerate, IntentEmotionalSupport},
		{"crisis wins over sadness", "i am sad and i want to die", EmotionCrisis, IntensityCritical, IntentImmediateSupport},
		{"distress wins over sadness", "confused and lonely", EmotionDistressed, IntensityHigh, IntentSeekingGuidance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.message)
			assert.Equal(t, tt.wantEmotion, got.PrimaryEmotion)
			assert.Equal(t, tt.wantIntensity, got.Intensity)
			assert.Equal(t, tt.wantIntent, got.Intent)
		})
	}
}

func TestAnalyzeIntentOverrides(t *testing.T) {
	a := NewEmotionalStateAnalyzer()

	t.Run("guidance phrase overrides neutral", func(t *testing.T) {
		got := a.Analyze("what should i do about my rent")
		assert.Equal(t, EmotionNeutral, got.PrimaryEmotion)
		assert.Equal(t, IntentSeekingGuidance, got.Intent)
	})

	t.Run("guidance phrase overrides sadness intent", func(t *testing.T) {
		got := a.Analyze("i feel so lonely, what should i do")
		assert.Equal(t, EmotionSadness, got.PrimaryEmotion)
		assert.Equal(t, IntentSeekingGuidance, got.Intent)
	})

	t.Run("sharing phrase forces emotional release", func(t *testing.T) {
		got := a.Analyze("i just need to vent for a minute")
		assert.Equal(t, IntentEmotionalRelease, got.Intent)
	})

	t.Run("crisis intent is never overridden", func(t *testing.T) {
		got := a.Analyze("i want to die, what should i do")
		assert.Equal(t, EmotionCrisis, got.PrimaryEmotion)
		assert.Equal(t, IntentImmediateSupport, got.Intent)
	})
}

func TestAnalyzeDomain(t *testing.T) {
	a := NewEmotionalStateAnalyzer()

	assert.Equal(t, DomainWorkCareer, a.Analyze("my boss shouted at me").Domain)
	assert.Equal(t, DomainRelationships, a.Analyze("went through a breakup last week").Domain)
	assert.Equal(t, DomainGeneral, a.Analyze("just a random thought").Domain)

	// Domain is attached regardless of the emotional branch.
	crisis := a.Analyze("my boss fired me and i can't take it")
	assert.Equal(t, EmotionCrisis, crisis.PrimaryEmotion)
	assert.Equal(t, DomainWorkCareer, crisis.Domain)
}

func TestAnalyzeIntimacy(t *testing.T) {
	a := NewEmotionalStateAnalyzer()

	assert.Equal(t, IntimacyCloseFriend, a.Analyze("bhai kya chal raha hai").Intimacy)
	assert.Equal(t, IntimacySupportiveFriend, a.Analyze("hello, I wanted to talk about something").Intimacy)
}

// The one structural invariant of the assessment: critical intensity and
// the crisis emotion always travel together.
func TestAnalyzeCriticalIffCrisis(t *testing.T) {
	a := NewEmotionalStateAnalyzer()

	inputs := []string{
		"", "hello", "tension", "lonely", "khatam sab kuch", "want to die",
		"what should i do", "बहुत परेशान हूं", "आत्महत्या", "mood off",
		"i can't take it", "great day today", "bhai dimag phat raha hai",
	}
	for _, in := range inputs {
		got := a.Analyze(in)
		assert.Equal(t,
			got.PrimaryEmotion == EmotionCrisis,
			got.Intensity == IntensityCritical,
			"input %q: crisis emotion and critical intensity must agree", in)
	}
}
