package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"donorlink/internal/chatbot"
	"donorlink/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockDonationStore struct {
	profile *chatbot.DonorProfile
	err     error
}

func (m *mockDonationStore) GetDonorProfile(ctx context.Context, donorID uuid.UUID) (*chatbot.DonorProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

type mockConversationStore struct {
	created   []*models.Conversation
	createErr error

	listResult []*models.Conversation
	daily      []models.IntentDailyCount
	totals     []models.IntentCount
	distinct   int64
	total      int64
	queryErr   error
}

func (m *mockConversationStore) Create(ctx context.Context, conv *models.Conversation) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, conv)
	return nil
}

func (m *mockConversationStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Conversation, error) {
	return m.listResult, m.queryErr
}

func (m *mockConversationStore) DailyIntentCounts(ctx context.Context, since time.Time) ([]models.IntentDailyCount, error) {
	return m.daily, m.queryErr
}

func (m *mockConversationStore) IntentTotals(ctx context.Context, since time.Time) ([]models.IntentCount, error) {
	return m.totals, m.queryErr
}

func (m *mockConversationStore) CountDistinctUsers(ctx context.Context, since time.Time) (int64, error) {
	return m.distinct, m.queryErr
}

func (m *mockConversationStore) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return m.total, m.queryErr
}

func newTestChatService(donations *mockDonationStore, conversations *mockConversationStore) *ChatService {
	kb := chatbot.NewKnowledgeBase()
	classifier := chatbot.NewClassifier(kb)
	composer := chatbot.NewComposer(kb, "+1-800-555-0199", "/blood-banks", rand.New(rand.NewSource(1)), nil)
	return NewChatService(classifier, composer, donations, conversations, zap.NewNop())
}

func TestHandleMessage_EmptyMessage(t *testing.T) {
	svc := newTestChatService(&mockDonationStore{}, &mockConversationStore{})

	_, err := svc.HandleMessage(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.HandleMessage(context.Background(), nil, "   \t\n")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestHandleMessage_AnonymousEligibilityQuestion(t *testing.T) {
	conversations := &mockConversationStore{}
	svc := newTestChatService(&mockDonationStore{}, conversations)

	resp, err := svc.HandleMessage(context.Background(), nil, "Am I eligible to donate blood?")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "eligibility", resp.Intent)
	assert.Contains(t, chatbot.NewKnowledgeBase().Responses(chatbot.CategoryEligibility), resp.Response)
	assert.Equal(t, 0, resp.UserInfo.DonationCount)
	assert.Nil(t, resp.UserInfo.LastDonation)

	// Anonymous exchanges are not persisted
	assert.Empty(t, conversations.created)
}

func TestHandleMessage_AuthenticatedExchangeIsPersisted(t *testing.T) {
	userID := uuid.New()
	last := time.Now().AddDate(0, 0, -100)
	donations := &mockDonationStore{profile: &chatbot.DonorProfile{DonationCount: 2, LastDonation: &last}}
	conversations := &mockConversationStore{}
	svc := newTestChatService(donations, conversations)

	resp, err := svc.HandleMessage(context.Background(), &userID, "does the needle hurt")
	require.NoError(t, err)

	assert.Equal(t, "safety", resp.Intent)
	assert.Equal(t, 2, resp.UserInfo.DonationCount)
	require.NotNil(t, resp.UserInfo.LastDonation)

	require.Len(t, conversations.created, 1)
	conv := conversations.created[0]
	assert.Equal(t, userID, conv.UserID)
	assert.Equal(t, "does the needle hurt", conv.Message)
	assert.Equal(t, "safety", conv.Intent)
	assert.Equal(t, resp.Response, conv.Response)
}

func TestHandleMessage_LoggingFailureIsSwallowed(t *testing.T) {
	userID := uuid.New()
	donations := &mockDonationStore{profile: &chatbot.DonorProfile{}}
	conversations := &mockConversationStore{createErr: errors.New("db down")}
	svc := newTestChatService(donations, conversations)

	resp, err := svc.HandleMessage(context.Background(), &userID, "hello")
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestHandleMessage_ProfileLookupFailsOpen(t *testing.T) {
	userID := uuid.New()
	donations := &mockDonationStore{err: errors.New("db down")}
	conversations := &mockConversationStore{}
	svc := newTestChatService(donations, conversations)

	resp, err := svc.HandleMessage(context.Background(), &userID, "I want to book an appointment")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, "appointment", resp.Intent)
	assert.Equal(t, 0, resp.UserInfo.DonationCount)
	assert.Nil(t, resp.UserInfo.LastDonation)
	// Signed in (even with a failed lookup) means no signup call-to-action
	assert.NotContains(t, resp.Response, "Create a free donor account")
}

func TestHandleMessage_AppointmentPersonalization(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	last := now.AddDate(0, 0, -10)
	donations := &mockDonationStore{profile: &chatbot.DonorProfile{DonationCount: 3, LastDonation: &last}}
	conversations := &mockConversationStore{}

	kb := chatbot.NewKnowledgeBase()
	composer := chatbot.NewComposer(kb, "+1-800-555-0199", "/blood-banks", rand.New(rand.NewSource(1)), func() time.Time { return now })
	svc := NewChatService(chatbot.NewClassifier(kb), composer, donations, conversations, zap.NewNop())

	resp, err := svc.HandleMessage(context.Background(), &userID, "I want to book an appointment")
	require.NoError(t, err)

	assert.Contains(t, resp.Response, "3")
	assert.Contains(t, resp.Response, "46")
}

func TestSuggestions_Branches(t *testing.T) {
	userID := uuid.New()

	t.Run("anonymous gets new-donor prompt", func(t *testing.T) {
		svc := newTestChatService(&mockDonationStore{}, &mockConversationStore{})
		got := svc.Suggestions(context.Background(), nil)
		require.Len(t, got, 6)
		assert.Contains(t, got[0], "new to blood donation")
	})

	t.Run("donor in waiting period", func(t *testing.T) {
		last := time.Now().AddDate(0, 0, -10)
		svc := newTestChatService(&mockDonationStore{profile: &chatbot.DonorProfile{DonationCount: 3, LastDonation: &last}}, &mockConversationStore{})
		got := svc.Suggestions(context.Background(), &userID)
		assert.Equal(t, "When can I donate blood again?", got[0])
	})

	t.Run("donor eligible again", func(t *testing.T) {
		last := time.Now().AddDate(0, 0, -90)
		svc := newTestChatService(&mockDonationStore{profile: &chatbot.DonorProfile{DonationCount: 3, LastDonation: &last}}, &mockConversationStore{})
		got := svc.Suggestions(context.Background(), &userID)
		assert.Contains(t, got[0], "ready to donate again")
	})

	t.Run("lookup failure falls back to new-donor prompt", func(t *testing.T) {
		svc := newTestChatService(&mockDonationStore{err: errors.New("db down")}, &mockConversationStore{})
		got := svc.Suggestions(context.Background(), &userID)
		assert.Contains(t, got[0], "new to blood donation")
	})
}

func TestAnalytics_AssemblesAggregates(t *testing.T) {
	conversations := &mockConversationStore{
		daily: []models.IntentDailyCount{
			{Date: "2026-02-27", Intent: "eligibility", Count: 4},
			{Date: "2026-02-28", Intent: "appointment", Count: 2},
		},
		totals: []models.IntentCount{
			{Intent: "eligibility", Count: 4},
			{Intent: "appointment", Count: 2},
		},
		distinct: 3,
		total:    6,
	}
	svc := newTestChatService(&mockDonationStore{}, conversations)

	got, err := svc.Analytics(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 30, got.WindowDays)
	require.Len(t, got.Daily, 2)
	assert.Equal(t, "eligibility", got.Daily[0].Intent)
	require.Len(t, got.Totals, 2)
	assert.GreaterOrEqual(t, got.Totals[0].Count, got.Totals[1].Count)
	assert.Equal(t, int64(3), got.DistinctUsers)
	assert.Equal(t, int64(6), got.TotalMessages)
}

func TestAnalytics_PropagatesStoreErrors(t *testing.T) {
	conversations := &mockConversationStore{queryErr: errors.New("db down")}
	svc := newTestChatService(&mockDonationStore{}, conversations)

	_, err := svc.Analytics(context.Background(), 30)
	assert.Error(t, err)
}

func TestHistory_MapsConversations(t *testing.T) {
	userID := uuid.New()
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	conversations := &mockConversationStore{
		listResult: []*models.Conversation{
			{ID: uuid.New(), UserID: userID, Message: "hi", Response: "hello!", Intent: "general", CreatedAt: created},
		},
	}
	svc := newTestChatService(&mockDonationStore{}, conversations)

	got, err := svc.History(context.Background(), userID, 0, -1)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Message)
	assert.Equal(t, "general", got[0].Intent)
	assert.Equal(t, created.Format(time.RFC3339), got[0].CreatedAt)
}
