package sarthi

// SelectStrategy maps an assessment to a response strategy. Critical
// intensity routes to crisis support before anything else is considered;
// no combination of intent or emotion may override that.
func SelectStrategy(a Assessment) Strategy {
	if a.Intensity == IntensityCritical || a.PrimaryEmotion == EmotionCrisis {
		return StrategyCrisisSupport
	}
	if a.Intent == IntentSeekingGuidance {
		return StrategyPracticalGuidance
	}
	if a.PrimaryEmotion == EmotionSadness || a.Intent == IntentEmotionalSupport {
		return StrategyEmotionalSupport
	}
	return StrategyFriendlyChat
}
