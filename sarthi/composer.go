package sarthi

import (
	"fmt"
	"strings"
)

// PromptComposer renders the system prompt for one chat turn. Composition
// is pure string assembly: identical inputs produce byte-identical output,
// and missing context renders as an explicit "no data" line so the model is
// never tempted to invent history.
type PromptComposer struct{}

func NewPromptComposer() *PromptComposer {
	return &PromptComposer{}
}

type ComposeProps struct {
	Strategy   Strategy
	Assessment Assessment
	Context    ConversationContext
	Language   Language
	Switched   bool
}

func (c *PromptComposer) Compose(args ComposeProps) string {
	var b strings.Builder

	b.WriteString(personaPreamble)
	b.WriteString("\n\n")
	b.WriteString(c.languageDirective(args.Language))
	b.WriteString("\n\n")
	b.WriteString(c.addressDirective(args))
	b.WriteString("\n\n")
	b.WriteString(strategyTemplate(args.Strategy))

	if args.Strategy == StrategyCrisisSupport {
		b.WriteString("\n\n")
		b.WriteString(HelplineBlock)
	}

	b.WriteString("\n\nWhat you know about them:\n")
	b.WriteString("- Recent mood history: ")
	b.WriteString(moodDigest(args.Context.EmotionalHistory))
	b.WriteString("\n- Latest check-in: ")
	b.WriteString(checkinDigest(args.Context.LatestCheckin))

	b.WriteString("\n\nRecent conversation (oldest first):\n")
	b.WriteString(conversationDigest(args.Context.RecentMessages))

	if args.Switched {
		b.WriteString("\n\n")
		b.WriteString(switchConfirmInstruction)
	}

	return b.String()
}

func (c *PromptComposer) languageDirective(lang Language) string {
	switch lang {
	case LanguageHindi:
		return "Reply in Hindi, written in Devanagari script."
	case LanguageHinglish:
		return "Reply in Hinglish: romanized Hindi mixed naturally with English, written in Latin script."
	default:
		return "Reply in natural, conversational English."
	}
}

func (c *PromptComposer) addressDirective(args ComposeProps) string {
	name := strings.TrimSpace(args.Context.Profile.FirstName)
	if name == "" {
		if args.Language == LanguageEnglish {
			name = "friend"
		} else {
			name = "yaar"
		}
	}

	tone := "like a steady, supportive friend"
	if args.Assessment.Intimacy == IntimacyCloseFriend {
		tone = "like a close friend who has known them for years, informal and direct"
	}

	return fmt.Sprintf("You are talking to %s. Address them %s.", name, tone)
}

func strategyTemplate(s Strategy) string {
	switch s {
	case StrategyCrisisSupport:
		return crisisTemplate
	case StrategyPracticalGuidance:
		return guidanceTemplate
	case StrategyEmotionalSupport:
		return supportTemplate
	default:
		return friendlyTemplate
	}
}

func moodDigest(entries []MoodEntry) string {
	if len(entries) == 0 {
		return "no data yet"
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Domain != "" && e.Domain != string(DomainGeneral) {
			parts = append(parts, fmt.Sprintf("%s (%s)", e.Mood, e.Domain))
		} else {
			parts = append(parts, e.Mood)
		}
	}
	return strings.Join(parts, ", ")
}

func checkinDigest(checkin *Checkin) string {
	if checkin == nil {
		return "no check-in data"
	}
	digest := fmt.Sprintf("wellness %d/10, stress %d/10, mood %q",
		checkin.WellnessScore, checkin.StressScore, checkin.Mood)
	if len(checkin.StressedDomains) > 0 {
		digest += ", stressed about " + strings.Join(checkin.StressedDomains, ", ")
	}
	return digest
}

func conversationDigest(messages []Message) string {
	if len(messages) == 0 {
		return "(no earlier messages)"
	}
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	return b.String()
}
