package sarthi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectStrategy(t *testing.T) {
	tests := []struct {
		name       string
		assessment Assessment
		want       Strategy
	}{
		{
			"crisis maps to crisis support",
			Assessment{PrimaryEmotion: EmotionCrisis, Intensity: IntensityCritical, Intent: IntentImmediateSupport},
			StrategyCrisisSupport,
		},
		{
			"guidance intent maps to practical guidance",
			Assessment{PrimaryEmotion: EmotionNeutral, Intensity: IntensityLow, Intent: IntentSeekingGuidance},
			StrategyPracticalGuidance,
		},
		{
			"sadness maps to emotional support",
			Assessment{PrimaryEmotion: EmotionSadness, Intensity: IntensityModerate, Intent: IntentEmotionalSupport},
			StrategyEmotionalSupport,
		},
		{
			"neutral maps to friendly chat",
			Assessment{PrimaryEmotion: EmotionNeutral, Intensity: IntensityLow, Intent: IntentConversation},
			StrategyFriendlyChat,
		},
		{
			"release with neutral emotion stays friendly chat",
			Assessment{PrimaryEmotion: EmotionNeutral, Intensity: IntensityLow, Intent: IntentEmotionalRelease},
			StrategyFriendlyChat,
		},
		{
			"sadness with guidance intent prefers practical guidance",
			Assessment{PrimaryEmotion: EmotionSadness, Intensity: IntensityModerate, Intent: IntentSeekingGuidance},
			StrategyPracticalGuidance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectStrategy(tt.assessment))
		})
	}
}

// Exhaustively sweep every enum combination: nothing may route a critical
// assessment anywhere but crisis support.
func TestSelectStrategyCrisisInvariant(t *testing.T) {
	emotions := []Emotion{EmotionNeutral, EmotionSadness, EmotionDistressed, EmotionCrisis}
	intensities := []Intensity{IntensityLow, IntensityModerate, IntensityHigh, IntensityCritical}
	intents := []Intent{IntentConversation, IntentSeekingGuidance, IntentEmotionalSupport, IntentEmotionalRelease, IntentImmediateSupport}
	intimacies := []IntimacyLevel{IntimacyCloseFriend, IntimacySupportiveFriend}
	domains := []Domain{DomainWorkCareer, DomainRelationships, DomainGeneral}

	for _, emotion := range emotions {
		for _, intensity := range intensities {
			for _, intent := range intents {
				for _, intimacy := range intimacies {
					for _, domain := range domains {
						a := Assessment{
							PrimaryEmotion: emotion,
							Intensity:      intensity,
							Intent:         intent,
							Intimacy:       intimacy,
							Domain:         domain,
						}
						got := SelectStrategy(a)
						if intensity == IntensityCritical || emotion == EmotionCrisis {
							assert.Equal(t, StrategyCrisisSupport, got, "assessment %+v", a)
						} else {
							assert.NotEqual(t, StrategyCrisisSupport, got, "assessment %+v", a)
						}
					}
				}
			}
		}
	}
}
