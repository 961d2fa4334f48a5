package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_SingleCategoryKeywords(t *testing.T) {
	classifier := NewClassifier(NewKnowledgeBase())

	tests := []struct {
		message string
		want    Category
	}{
		{"Am I eligible to donate blood?", CategoryEligibility},
		{"do i qualify as a donor", CategoryEligibility},
		{"I want to book a visit", CategoryAppointment},
		{"what is the address of your office", CategoryLocation},
		{"how do i prepare for my visit", CategoryPreparation},
		{"i feel dizzy", CategoryAfterDonation},
		{"what is my blood group", CategoryBloodTypes},
		{"does the needle hurt", CategorySafety},
		{"hello there", CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.message))
		})
	}
}

func TestClassify_NoMatchFallsBackToGeneral(t *testing.T) {
	classifier := NewClassifier(NewKnowledgeBase())

	assert.Equal(t, CategoryGeneral, classifier.Classify("tell me a joke"))
	assert.Equal(t, CategoryGeneral, classifier.Classify("zzzzz"))
	assert.Equal(t, CategoryGeneral, classifier.Classify(""))
}

// A message matching keywords in two categories must resolve to the one
// registered earlier. "appointment" (2nd entry) beats "where" (3rd entry).
func TestClassify_FirstMatchWinsByRegistrationOrder(t *testing.T) {
	classifier := NewClassifier(NewKnowledgeBase())

	assert.Equal(t, CategoryAppointment, classifier.Classify("Where can I book an appointment?"))
	// "eligible" (1st entry) beats "appointment" (2nd entry)
	assert.Equal(t, CategoryEligibility, classifier.Classify("am i eligible to book an appointment"))
}

func TestClassify_CaseInsensitive(t *testing.T) {
	classifier := NewClassifier(NewKnowledgeBase())

	assert.Equal(t, CategoryEligibility, classifier.Classify("AM I ELIGIBLE?"))
}

// Matching is substring containment, not whole-word.
func TestClassify_SubstringContainment(t *testing.T) {
	classifier := NewClassifier(NewKnowledgeBase())

	assert.Equal(t, CategoryAppointment, classifier.Classify("my visit was rescheduled"))
}

func TestKnowledgeBase_PriorityOrder(t *testing.T) {
	kb := NewKnowledgeBase()

	want := []Category{
		CategoryEligibility,
		CategoryAppointment,
		CategoryLocation,
		CategoryPreparation,
		CategoryAfterDonation,
		CategoryBloodTypes,
		CategorySafety,
		CategoryGeneral,
	}

	entries := kb.Entries()
	got := make([]Category, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.Category)
	}
	assert.Equal(t, want, got)
}

func TestKnowledgeBase_EveryCategoryHasResponses(t *testing.T) {
	kb := NewKnowledgeBase()

	for _, entry := range kb.Entries() {
		assert.NotEmpty(t, entry.Responses, "category %s has no responses", entry.Category)
	}
}

func TestKnowledgeBase_ResponsesFallsBackToGeneral(t *testing.T) {
	kb := NewKnowledgeBase()

	assert.Equal(t, kb.Responses(CategoryGeneral), kb.Responses(Category("bogus")))
}
