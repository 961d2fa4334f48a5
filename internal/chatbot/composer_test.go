package chatbot

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmergencyLine = "+1-800-555-0199"
	testDirectoryURL  = "/blood-banks"
)

func newTestComposer(seed int64, now time.Time) *Composer {
	return NewComposer(
		NewKnowledgeBase(),
		testEmergencyLine,
		testDirectoryURL,
		rand.New(rand.NewSource(seed)),
		func() time.Time { return now },
	)
}

func TestCompose_PicksFromCategoryResponses(t *testing.T) {
	kb := NewKnowledgeBase()
	composer := newTestComposer(1, time.Now())

	for i := 0; i < 20; i++ {
		got := composer.Compose(CategoryEligibility, "am i eligible")
		assert.Contains(t, kb.Responses(CategoryEligibility), got)
	}
}

func TestCompose_SeededSelectionIsDeterministic(t *testing.T) {
	now := time.Now()
	a := newTestComposer(42, now)
	b := newTestComposer(42, now)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Compose(CategoryPreparation, "how to prepare"), b.Compose(CategoryPreparation, "how to prepare"))
	}
}

func TestCompose_UrgentAppointmentBypassesRandomSelection(t *testing.T) {
	composer := newTestComposer(7, time.Now())

	want := fmt.Sprintf("For urgent donation needs, please call our emergency line at %s right away. Our staff will arrange a priority appointment for you.", testEmergencyLine)
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, composer.Compose(CategoryAppointment, "this is urgent"))
	}

	// Case-insensitive on the raw message
	assert.Equal(t, want, composer.Compose(CategoryAppointment, "URGENT! need to donate"))

	// "urgent" only short-circuits appointment messages
	assert.NotEqual(t, want, composer.Compose(CategoryGeneral, "urgent question"))
}

func TestCompose_LocationAlwaysEndsWithDirectorySuffix(t *testing.T) {
	composer := newTestComposer(7, time.Now())

	suffix := fmt.Sprintf(" You can browse the full list of partner blood banks at %s.", testDirectoryURL)
	for i := 0; i < 20; i++ {
		assert.True(t, strings.HasSuffix(composer.Compose(CategoryLocation, "where can i donate"), suffix))
	}
}

func TestCompose_UnknownCategoryFallsBackToGeneral(t *testing.T) {
	kb := NewKnowledgeBase()
	composer := newTestComposer(3, time.Now())

	got := composer.Compose(Category("bogus"), "whatever")
	assert.Contains(t, kb.Responses(CategoryGeneral), got)
}

func TestPersonalize_WaitingPeriodReportsCountAndRemainingDays(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	composer := newTestComposer(1, now)

	last := now.AddDate(0, 0, -10)
	profile := &DonorProfile{DonationCount: 3, LastDonation: &last}

	got := composer.Personalize(CategoryAppointment, "base response", profile)
	assert.Contains(t, got, "3")
	assert.Contains(t, got, "46")
	assert.Contains(t, got, "wait")
}

func TestPersonalize_EligibleDonorGetsBookingInvite(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	composer := newTestComposer(1, now)

	last := now.AddDate(0, 0, -60)
	profile := &DonorProfile{DonationCount: 5, LastDonation: &last}

	got := composer.Personalize(CategoryAppointment, "base response", profile)
	assert.Contains(t, got, "eligible to donate again")
	assert.NotContains(t, got, "wait")
}

func TestPersonalize_ExactIntervalBoundary(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	composer := newTestComposer(1, now)

	// Exactly 56 days is eligible; 55 days and change is not.
	last := now.AddDate(0, 0, -MinDonationIntervalDays)
	profile := &DonorProfile{DonationCount: 1, LastDonation: &last}
	assert.Contains(t, composer.Personalize(CategoryAppointment, "r", profile), "eligible to donate again")

	almost := now.Add(-time.Duration(MinDonationIntervalDays)*24*time.Hour + time.Hour)
	profile = &DonorProfile{DonationCount: 1, LastDonation: &almost}
	got := composer.Personalize(CategoryAppointment, "r", profile)
	assert.Contains(t, got, "1 more day(s)")
}

func TestPersonalize_AnonymousAppointmentGetsSignupCTA(t *testing.T) {
	composer := newTestComposer(1, time.Now())

	got := composer.Personalize(CategoryAppointment, "base response", nil)
	require.True(t, strings.HasPrefix(got, "base response"))
	assert.Contains(t, got, "Create a free donor account")
}

func TestPersonalize_NonAppointmentPassesThrough(t *testing.T) {
	now := time.Now()
	composer := newTestComposer(1, now)

	last := now.AddDate(0, 0, -10)
	profile := &DonorProfile{DonationCount: 3, LastDonation: &last}

	assert.Equal(t, "base response", composer.Personalize(CategoryEligibility, "base response", profile))
	assert.Equal(t, "base response", composer.Personalize(CategoryLocation, "base response", nil))
}

func TestPersonalize_ZeroDonationsPassesThrough(t *testing.T) {
	composer := newTestComposer(1, time.Now())

	got := composer.Personalize(CategoryAppointment, "base response", &DonorProfile{})
	assert.Equal(t, "base response", got)
}

func TestPersonalize_CountWithoutDateInvitesBooking(t *testing.T) {
	composer := newTestComposer(1, time.Now())

	got := composer.Personalize(CategoryAppointment, "base response", &DonorProfile{DonationCount: 2})
	assert.Contains(t, got, "eligible to donate again")
}

func TestDaysBetween_TruncatesPartialDays(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(from, from.Add(23*time.Hour)))
	assert.Equal(t, 1, DaysBetween(from, from.Add(24*time.Hour)))
	assert.Equal(t, 55, DaysBetween(from, from.Add(55*24*time.Hour+23*time.Hour)))
}
