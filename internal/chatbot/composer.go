package chatbot

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// MinDonationIntervalDays is the minimum number of days between two whole
// blood donations.
const MinDonationIntervalDays = 56

const millisPerDay = 86_400_000

const (
	emergencyTemplate = "For urgent donation needs, please call our emergency line at %s right away. Our staff will arrange a priority appointment for you."
	directoryTemplate = " You can browse the full list of partner blood banks at %s."
	signupCTA         = " Create a free donor account to book appointments and track your donation history!"
	waitTemplate      = "You've donated %d time(s) so far. Thank you! You need to wait %d more day(s) before your next donation. We'll notify you as soon as you're eligible again."
	bookAgainTemplate = "Welcome back! You've already donated %d time(s) and you're eligible to donate again. Would you like to book your next appointment?"
)

// DonorProfile carries the donation-history facts used to personalize
// responses. LastDonation is nil when the donor has never donated.
type DonorProfile struct {
	DonationCount int
	LastDonation  *time.Time
}

// Composer picks a canned response for a classified category and layers the
// donor-specific overrides on top. The random source is injected so tests
// can pin the selection; it is guarded by a mutex because rand.Rand is not
// safe for concurrent use.
type Composer struct {
	kb            *KnowledgeBase
	emergencyLine string
	directoryURL  string
	now           func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewComposer builds a Composer. Pass nil rng or now to use the defaults.
func NewComposer(kb *KnowledgeBase, emergencyLine, directoryURL string, rng *rand.Rand, now func() time.Time) *Composer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Composer{
		kb:            kb,
		emergencyLine: emergencyLine,
		directoryURL:  directoryURL,
		now:           now,
		rng:           rng,
	}
}

// Compose selects the base response for a category. Urgent appointment
// requests short-circuit to the emergency contact string, and location
// responses always end with a pointer to the blood bank directory.
func (c *Composer) Compose(category Category, message string) string {
	switch {
	case category == CategoryAppointment && strings.Contains(strings.ToLower(message), "urgent"):
		return fmt.Sprintf(emergencyTemplate, c.emergencyLine)
	case category == CategoryLocation:
		return c.pick(category) + fmt.Sprintf(directoryTemplate, c.directoryURL)
	default:
		return c.pick(category)
	}
}

// Personalize rewrites an appointment response using the requester's
// donation history. Visitors without an account get a signup call-to-action
// instead. Non-appointment responses pass through untouched.
func (c *Composer) Personalize(category Category, response string, profile *DonorProfile) string {
	if category != CategoryAppointment {
		return response
	}
	if profile == nil {
		return response + signupCTA
	}
	if profile.DonationCount > 0 {
		if profile.LastDonation != nil {
			days := DaysBetween(*profile.LastDonation, c.now())
			if days < MinDonationIntervalDays {
				return fmt.Sprintf(waitTemplate, profile.DonationCount, MinDonationIntervalDays-days)
			}
		}
		return fmt.Sprintf(bookAgainTemplate, profile.DonationCount)
	}
	return response
}

// DaysBetween returns whole calendar days from one instant to another,
// truncating partial days (millisecond delta divided by 86,400,000).
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Milliseconds() / millisPerDay)
}

func (c *Composer) pick(category Category) string {
	responses := c.kb.Responses(category)
	c.mu.Lock()
	defer c.mu.Unlock()
	return responses[c.rng.Intn(len(responses))]
}
