package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"manovadev/sarthi"
)

type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

const ensureUser = `
INSERT INTO users (user_id, first_name, language_preference)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE
SET first_name = COALESCE(NULLIF(EXCLUDED.first_name, ''), users.first_name)
`

// EnsureUser creates the user row on first contact and refreshes the first
// name on later ones.
func (q *Queries) EnsureUser(ctx context.Context, userID, firstName, languagePreference string) error {
	_, err := q.db.ExecContext(ctx, ensureUser, userID, firstName, languagePreference)
	return err
}

const getProfile = `
SELECT first_name, language_preference
FROM users
WHERE user_id = $1
`

func (q *Queries) GetProfile(ctx context.Context, userID string) (*sarthi.Profile, error) {
	var firstName, languagePreference sql.NullString
	err := q.db.QueryRowContext(ctx, getProfile, userID).Scan(&firstName, &languagePreference)
	if errors.Is(err, sql.ErrNoRows) {
		return &sarthi.Profile{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &sarthi.Profile{
		FirstName:          firstName.String,
		LanguagePreference: languagePreference.String,
	}, nil
}

const appendMessage = `
INSERT INTO messages (message_id, user_id, role, content)
VALUES ($1, $2, $3, $4)
`

func (q *Queries) AppendMessage(ctx context.Context, userID, role, content string) error {
	_, err := q.db.ExecContext(ctx, appendMessage, uuid.NewString(), userID, role, content)
	return err
}

const getLastMessages = `
SELECT role, content
FROM messages
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2
`

// GetLastMessages returns up to limit turns, most-recent-last.
func (q *Queries) GetLastMessages(ctx context.Context, userID string, limit int) ([]sarthi.Message, error) {
	rows, err := q.db.QueryContext(ctx, getLastMessages, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []sarthi.Message
	for rows.Next() {
		var m sarthi.Message
		if err := rows.Scan(&m.Role, &m.Content); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Query is newest-first for the LIMIT; callers want oldest-first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

const insertMoodEntry = `
INSERT INTO mood_entries (entry_id, user_id, mood, domain)
VALUES ($1, $2, $3, $4)
`

func (q *Queries) InsertMoodEntry(ctx context.Context, userID, mood, domain string) error {
	_, err := q.db.ExecContext(ctx, insertMoodEntry, uuid.NewString(), userID, mood, domain)
	return err
}

const getRecentMoodEntries = `
SELECT mood, domain, created_at
FROM mood_entries
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT 5
`

func (q *Queries) GetRecentMoodEntries(ctx context.Context, userID string) ([]sarthi.MoodEntry, error) {
	rows, err := q.db.QueryContext(ctx, getRecentMoodEntries, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []sarthi.MoodEntry
	for rows.Next() {
		var e sarthi.MoodEntry
		var domain sql.NullString
		if err := rows.Scan(&e.Mood, &domain, &e.RecordedAt); err != nil {
			return nil, err
		}
		e.Domain = domain.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

const insertCheckin = `
INSERT INTO checkins (checkin_id, user_id, wellness_score, stress_score, mood, stressed_domains)
VALUES ($1, $2, $3, $4, $5, $6)
`

func (q *Queries) InsertCheckin(ctx context.Context, userID string, checkin sarthi.Checkin) error {
	_, err := q.db.ExecContext(ctx, insertCheckin,
		uuid.NewString(), userID,
		checkin.WellnessScore, checkin.StressScore, checkin.Mood,
		pq.Array(checkin.StressedDomains))
	return err
}

const getLatestCheckin = `
SELECT wellness_score, stress_score, mood, stressed_domains
FROM checkins
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT 1
`

func (q *Queries) GetLatestCheckin(ctx context.Context, userID string) (*sarthi.Checkin, error) {
	var c sarthi.Checkin
	var mood sql.NullString
	err := q.db.QueryRowContext(ctx, getLatestCheckin, userID).Scan(
		&c.WellnessScore, &c.StressScore, &mood, pq.Array(&c.StressedDomains))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Mood = mood.String
	return &c, nil
}
