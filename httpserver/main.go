package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"manovadev/database/postgres"
	"manovadev/logger"
	"manovadev/sarthi"
)

// ReplyGenerator is the engine surface the HTTP layer needs.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, args sarthi.GenerateReplyProps) (*sarthi.Reply, error)
}

// WellnessStore accepts check-in and mood submissions. *postgres.Database
// satisfies it.
type WellnessStore interface {
	InsertCheckin(ctx context.Context, userID string, checkin sarthi.Checkin) error
	InsertMoodEntry(ctx context.Context, userID, mood, domain string) error
}

var _ WellnessStore = (*postgres.Database)(nil)

type HttpServerConnectProps struct {
	Logger *logger.LogMiddleware
	Engine ReplyGenerator
	DB     WellnessStore
}

type HttpServer struct {
	logger *logger.LogMiddleware
	engine ReplyGenerator
	db     WellnessStore
}

func Connect(args HttpServerConnectProps) *HttpServer {
	return &HttpServer{logger: args.Logger, engine: args.Engine, db: args.DB}
}

func (s *HttpServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLoggerMiddleware)

	r.Get("/healthz", s.handleHealthz)
	r.Post("/v1/chat", s.handleChat)
	r.Post("/v1/checkins", s.handleCheckin)
	r.Post("/v1/moods", s.handleMood)

	return r
}

func (s *HttpServer) requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		s.logger.Logger(ctx).Info("Request Received", zap.String("url", r.URL.Path), zap.String("method", r.Method))
		next.ServeHTTP(w, r)
		s.logger.Logger(ctx).Info("Request Completed", zap.String("path", r.URL.Path), zap.String("method", r.Method))
	})
}

func (s *HttpServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type chatRequest struct {
	UserID   string `json:"userId"`
	Message  string `json:"message"`
	Language string `json:"language,omitempty"`
}

type chatResponse struct {
	Content      string `json:"content"`
	LanguageUsed string `json:"languageUsed"`
}

func (s *HttpServer) handleChat(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("httpserver/handleChat")
	ctx, span := tracer.Start(r.Context(), "handleChat")
	defer span.End()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "userId is required"})
		return
	}

	span.SetAttributes(attribute.String("user.id", req.UserID))

	reply, err := s.engine.GenerateReply(ctx, sarthi.GenerateReplyProps{
		UserID:           req.UserID,
		Message:          req.Message,
		LanguageOverride: parseLanguage(req.Language),
	})
	if err != nil {
		// True infrastructure failure. The body stays user-safe; the
		// detail goes to the logs only.
		span.RecordError(err)
		s.logger.Logger(ctx).Error("[HttpServer] Chat turn failed", zap.Error(err))
		lang := parseLanguage(req.Language)
		if lang == "" {
			lang = sarthi.LanguageEnglish
		}
		writeJSON(w, http.StatusInternalServerError, chatResponse{
			Content:      sarthi.FallbackApology(lang),
			LanguageUsed: string(lang),
		})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Content:      reply.Content,
		LanguageUsed: string(reply.Language),
	})
}

type checkinRequest struct {
	UserID          string   `json:"userId"`
	WellnessScore   int      `json:"wellnessScore"`
	StressScore     int      `json:"stressScore"`
	Mood            string   `json:"mood"`
	StressedDomains []string `json:"stressedDomains"`
}

func (s *HttpServer) handleCheckin(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("httpserver/handleCheckin")
	ctx, span := tracer.Start(r.Context(), "handleCheckin")
	defer span.End()

	var req checkinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	err := s.db.InsertCheckin(ctx, req.UserID, sarthi.Checkin{
		WellnessScore:   req.WellnessScore,
		StressScore:     req.StressScore,
		Mood:            req.Mood,
		StressedDomains: req.StressedDomains,
	})
	if err != nil {
		span.RecordError(err)
		s.logger.Logger(ctx).Error("[HttpServer] Could not store check-in", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not store check-in"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "stored"})
}

type moodRequest struct {
	UserID string `json:"userId"`
	Mood   string `json:"mood"`
	Domain string `json:"domain,omitempty"`
}

func (s *HttpServer) handleMood(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("httpserver/handleMood")
	ctx, span := tracer.Start(r.Context(), "handleMood")
	defer span.End()

	var req moodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" || req.Mood == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := s.db.InsertMoodEntry(ctx, req.UserID, req.Mood, req.Domain); err != nil {
		span.RecordError(err)
		s.logger.Logger(ctx).Error("[HttpServer] Could not store mood entry", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not store mood entry"})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "stored"})
}

func parseLanguage(s string) sarthi.Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hindi", "hi":
		return sarthi.LanguageHindi
	case "hinglish", "hi-latn":
		return sarthi.LanguageHinglish
	case "english", "en":
		return sarthi.LanguageEnglish
	default:
		return ""
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
