package dto

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatUserInfo struct {
	DonationCount int     `json:"donationCount"`
	LastDonation  *string `json:"lastDonation"`
}

type ChatResponse struct {
	Success  bool         `json:"success"`
	Response string       `json:"response"`
	Intent   string       `json:"intent"`
	UserInfo ChatUserInfo `json:"userInfo"`
}

type ConversationResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Response  string `json:"response"`
	Intent    string `json:"intent"`
	CreatedAt string `json:"created_at"`
}

type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type DailyIntentCount struct {
	Date   string `json:"date"`
	Intent string `json:"intent"`
	Count  int64  `json:"count"`
}

type IntentTotal struct {
	Intent string `json:"intent"`
	Count  int64  `json:"count"`
}

type AnalyticsResponse struct {
	WindowDays    int                `json:"windowDays"`
	Daily         []DailyIntentCount `json:"daily"`
	Totals        []IntentTotal      `json:"totals"`
	DistinctUsers int64              `json:"distinctUsers"`
	TotalMessages int64              `json:"totalMessages"`
}
