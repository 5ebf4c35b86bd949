package sarthi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"manovadev/logger"
)

// Store interfaces for the external state the pipeline recalls. Implemented
// by database/postgres in production and by fakes in tests.

type ConversationStore interface {
	GetLastMessages(ctx context.Context, userID string, limit int) ([]Message, error)
	AppendMessage(ctx context.Context, userID string, role string, content string) error
}

type EmotionalHistoryStore interface {
	GetRecentMoodEntries(ctx context.Context, userID string) ([]MoodEntry, error)
}

type CheckinStore interface {
	GetLatestCheckin(ctx context.Context, userID string) (*Checkin, error)
}

type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}

type ContextGatewayConnectProps struct {
	Logger        *logger.LogMiddleware
	Conversations ConversationStore
	Moods         EmotionalHistoryStore
	Checkins      CheckinStore
	Profiles      ProfileStore
}

// ContextGateway gathers everything recalled for one chat turn. Every
// accessor failure is logged and replaced with the empty default: a reply
// built on less context always beats no reply.
type ContextGateway struct {
	logger        *logger.LogMiddleware
	conversations ConversationStore
	moods         EmotionalHistoryStore
	checkins      CheckinStore
	profiles      ProfileStore
}

func ConnectContextGateway(args ContextGatewayConnectProps) *ContextGateway {
	return &ContextGateway{
		logger:        args.Logger,
		conversations: args.Conversations,
		moods:         args.Moods,
		checkins:      args.Checkins,
		profiles:      args.Profiles,
	}
}

// Gather fans out the four independent reads and joins them. It never
// returns an error.
func (g *ContextGateway) Gather(ctx context.Context, userID string, limit int) ConversationContext {
	tracer := otel.Tracer("sarthi/Gather")
	ctx, span := tracer.Start(ctx, "Gather")
	defer span.End()

	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("messages.limit", limit),
	)

	cc := ConversationContext{UserID: userID}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		messages, err := g.conversations.GetLastMessages(egCtx, userID, limit)
		if err != nil {
			g.logger.Logger(ctx).Warn("[ContextGateway] Could not fetch recent messages, continuing without them", zap.Error(err))
			return nil
		}
		cc.RecentMessages = messages
		return nil
	})

	eg.Go(func() error {
		entries, err := g.moods.GetRecentMoodEntries(egCtx, userID)
		if err != nil {
			g.logger.Logger(ctx).Warn("[ContextGateway] Could not fetch mood history, continuing without it", zap.Error(err))
			return nil
		}
		cc.EmotionalHistory = entries
		return nil
	})

	eg.Go(func() error {
		checkin, err := g.checkins.GetLatestCheckin(egCtx, userID)
		if err != nil {
			g.logger.Logger(ctx).Warn("[ContextGateway] Could not fetch latest check-in, continuing without it", zap.Error(err))
			return nil
		}
		cc.LatestCheckin = checkin
		return nil
	})

	eg.Go(func() error {
		profile, err := g.profiles.GetProfile(egCtx, userID)
		if err != nil || profile == nil {
			if err != nil {
				g.logger.Logger(ctx).Warn("[ContextGateway] Could not fetch profile, using defaults", zap.Error(err))
			}
			return nil
		}
		cc.Profile = *profile
		return nil
	})

	_ = eg.Wait()

	span.SetAttributes(
		attribute.Int("messages.count", len(cc.RecentMessages)),
		attribute.Int("moods.count", len(cc.EmotionalHistory)),
		attribute.Bool("checkin.present", cc.LatestCheckin != nil),
	)

	return cc
}
