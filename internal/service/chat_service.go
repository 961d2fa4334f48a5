package service

import (
	"context"
	"errors"
	"time"

	"donorlink/internal/chatbot"
	"donorlink/internal/dto"
	"donorlink/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrEmptyMessage = errors.New("message is required")

// DonationStore is the slice of the donation records subsystem the chat
// pipeline reads from. It never writes donor records.
type DonationStore interface {
	GetDonorProfile(ctx context.Context, donorID uuid.UUID) (*chatbot.DonorProfile, error)
}

// ConversationStore persists and aggregates chat exchanges.
type ConversationStore interface {
	Create(ctx context.Context, conv *models.Conversation) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Conversation, error)
	DailyIntentCounts(ctx context.Context, since time.Time) ([]models.IntentDailyCount, error)
	IntentTotals(ctx context.Context, since time.Time) ([]models.IntentCount, error)
	CountDistinctUsers(ctx context.Context, since time.Time) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type ChatService struct {
	classifier    *chatbot.Classifier
	composer      *chatbot.Composer
	donations     DonationStore
	conversations ConversationStore
	logger        *zap.Logger
	now           func() time.Time
}

func NewChatService(
	classifier *chatbot.Classifier,
	composer *chatbot.Composer,
	donations DonationStore,
	conversations ConversationStore,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		classifier:    classifier,
		composer:      composer,
		donations:     donations,
		conversations: conversations,
		logger:        logger,
		now:           time.Now,
	}
}

// HandleMessage runs the full chat pipeline: classify the message, compose a
// response, personalize it with the requester's donation history, and log
// the exchange. userID is nil for anonymous visitors.
//
// The reply path is best-effort by design: a failed profile lookup degrades
// to the unpersonalized response, and a failed exchange write is logged and
// swallowed. Only an empty message is an error.
func (s *ChatService) HandleMessage(ctx context.Context, userID *uuid.UUID, message string) (*dto.ChatResponse, error) {
	if isBlank(message) {
		return nil, ErrEmptyMessage
	}

	var profile *chatbot.DonorProfile
	if userID != nil {
		p, err := s.donations.GetDonorProfile(ctx, *userID)
		if err != nil {
			s.logger.Warn("Donor profile lookup failed, continuing without history",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
			p = &chatbot.DonorProfile{}
		}
		profile = p
	}

	intent := s.classifier.Classify(message)
	response := s.composer.Compose(intent, message)
	response = s.composer.Personalize(intent, response, profile)

	if userID != nil {
		conv := &models.Conversation{
			ID:        uuid.New(),
			UserID:    *userID,
			Message:   sanitizeUTF8(message),
			Response:  response,
			Intent:    string(intent),
			CreatedAt: s.now(),
		}
		if err := s.conversations.Create(ctx, conv); err != nil {
			s.logger.Error("Failed to log chat exchange",
				zap.String("user_id", userID.String()),
				zap.Error(err),
			)
		}
	}

	return &dto.ChatResponse{
		Success:  true,
		Response: response,
		Intent:   string(intent),
		UserInfo: userInfo(profile),
	}, nil
}

// History returns the caller's prior exchanges in chronological order.
func (s *ChatService) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]dto.ConversationResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	conversations, err := s.conversations.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ConversationResponse, 0, len(conversations))
	for _, conv := range conversations {
		result = append(result, dto.ConversationResponse{
			ID:        conv.ID.String(),
			Message:   conv.Message,
			Response:  conv.Response,
			Intent:    conv.Intent,
			CreatedAt: conv.CreatedAt.Format(time.RFC3339),
		})
	}

	return result, nil
}

// Suggestions returns up to 6 example prompts. The first one is personalized
// from the caller's donation history when they are signed in.
func (s *ChatService) Suggestions(ctx context.Context, userID *uuid.UUID) []string {
	first := "I'm new to blood donation. Am I eligible to donate?"

	if userID != nil {
		profile, err := s.donations.GetDonorProfile(ctx, *userID)
		if err != nil {
			s.logger.Warn("Donor profile lookup failed for suggestions", zap.Error(err))
		} else if profile.DonationCount > 0 {
			if profile.LastDonation == nil || chatbot.DaysBetween(*profile.LastDonation, s.now()) >= chatbot.MinDonationIntervalDays {
				first = "I'm ready to donate again. How do I book an appointment?"
			} else {
				first = "When can I donate blood again?"
			}
		}
	}

	return []string{
		first,
		"Where is the nearest blood bank?",
		"How should I prepare before donating?",
		"What should I do after donating blood?",
		"Which blood types are compatible with mine?",
		"Is donating blood safe?",
	}
}

// Analytics aggregates the conversation log over a rolling window.
func (s *ChatService) Analytics(ctx context.Context, days int) (*dto.AnalyticsResponse, error) {
	if days <= 0 {
		days = 30
	}
	since := s.now().AddDate(0, 0, -days)

	daily, err := s.conversations.DailyIntentCounts(ctx, since)
	if err != nil {
		return nil, err
	}

	totals, err := s.conversations.IntentTotals(ctx, since)
	if err != nil {
		return nil, err
	}

	distinctUsers, err := s.conversations.CountDistinctUsers(ctx, since)
	if err != nil {
		return nil, err
	}

	total, err := s.conversations.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}

	resp := &dto.AnalyticsResponse{
		WindowDays:    days,
		Daily:         make([]dto.DailyIntentCount, 0, len(daily)),
		Totals:        make([]dto.IntentTotal, 0, len(totals)),
		DistinctUsers: distinctUsers,
		TotalMessages: total,
	}
	for _, d := range daily {
		resp.Daily = append(resp.Daily, dto.DailyIntentCount{Date: d.Date, Intent: d.Intent, Count: d.Count})
	}
	for _, t := range totals {
		resp.Totals = append(resp.Totals, dto.IntentTotal{Intent: t.Intent, Count: t.Count})
	}

	return resp, nil
}

func userInfo(profile *chatbot.DonorProfile) dto.ChatUserInfo {
	info := dto.ChatUserInfo{}
	if profile != nil {
		info.DonationCount = profile.DonationCount
		if profile.LastDonation != nil {
			last := profile.LastDonation.Format(time.RFC3339)
			info.LastDonation = &last
		}
	}
	return info
}
