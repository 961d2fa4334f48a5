package repository

import (
	"context"
	"time"

	"donorlink/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ConversationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewConversationRepository(db *pgxpool.Pool, logger *zap.Logger) *ConversationRepository {
	return &ConversationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ConversationRepository) Create(ctx context.Context, conv *models.Conversation) error {
	query := squirrel.Insert("chatbot_conversations").
		Columns("id", "user_id", "message", "response", "intent", "created_at").
		Values(conv.ID, conv.UserID, conv.Message, conv.Response, conv.Intent, conv.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListByUser returns a user's prior exchanges in chronological order.
func (r *ConversationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Conversation, error) {
	query := squirrel.Select("id", "user_id", "message", "response", "intent", "created_at").
		From("chatbot_conversations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conversations []*models.Conversation
	for rows.Next() {
		var conv models.Conversation
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.Message, &conv.Response, &conv.Intent, &conv.CreatedAt); err != nil {
			return nil, err
		}
		conversations = append(conversations, &conv)
	}

	return conversations, nil
}

// DailyIntentCounts groups exchanges since the given time by day and intent.
func (r *ConversationRepository) DailyIntentCounts(ctx context.Context, since time.Time) ([]models.IntentDailyCount, error) {
	query := squirrel.Select("DATE(created_at) AS day", "intent", "COUNT(*) AS count").
		From("chatbot_conversations").
		Where(squirrel.GtOrEq{"created_at": since}).
		GroupBy("DATE(created_at)", "intent").
		OrderBy("day ASC", "intent ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.IntentDailyCount
	for rows.Next() {
		var day time.Time
		var c models.IntentDailyCount
		if err := rows.Scan(&day, &c.Intent, &c.Count); err != nil {
			return nil, err
		}
		c.Date = day.Format("2006-01-02")
		counts = append(counts, c)
	}

	return counts, nil
}

// IntentTotals returns per-intent totals since the given time, busiest first.
func (r *ConversationRepository) IntentTotals(ctx context.Context, since time.Time) ([]models.IntentCount, error) {
	query := squirrel.Select("intent", "COUNT(*) AS count").
		From("chatbot_conversations").
		Where(squirrel.GtOrEq{"created_at": since}).
		GroupBy("intent").
		OrderBy("count DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []models.IntentCount
	for rows.Next() {
		var t models.IntentCount
		if err := rows.Scan(&t.Intent, &t.Count); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, nil
}

// CountDistinctUsers returns how many distinct users chatted since the given time.
func (r *ConversationRepository) CountDistinctUsers(ctx context.Context, since time.Time) (int64, error) {
	query := squirrel.Select("COUNT(DISTINCT user_id)").
		From("chatbot_conversations").
		Where(squirrel.GtOrEq{"created_at": since}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// CountSince returns the total number of exchanges since the given time.
func (r *ConversationRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("chatbot_conversations").
		Where(squirrel.GtOrEq{"created_at": since}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
