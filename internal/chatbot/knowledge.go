package chatbot

// Category is the topic bucket a chat message is classified into.
type Category string

const (
	CategoryEligibility   Category = "eligibility"
	CategoryAppointment   Category = "appointment"
	CategoryLocation      Category = "location"
	CategoryPreparation   Category = "preparation"
	CategoryAfterDonation Category = "after_donation"
	CategoryBloodTypes    Category = "blood_types"
	CategorySafety        Category = "safety"
	CategoryGeneral       Category = "general"
)

// Entry holds the keywords and canned responses for one category.
type Entry struct {
	Category  Category
	Keywords  []string
	Responses []string
}

// KnowledgeBase is the static category table. Entries are kept as an ordered
// slice: the slice order IS the classification priority, so a message that
// matches keywords in two categories resolves to the earlier one. Built once
// at startup and never mutated, so it is safe for concurrent reads.
type KnowledgeBase struct {
	entries []Entry
	index   map[Category]int
}

// NewKnowledgeBase builds the default donor-facing knowledge base.
func NewKnowledgeBase() *KnowledgeBase {
	return newKnowledgeBase([]Entry{
		{
			Category: CategoryEligibility,
			Keywords: []string{"eligible", "eligibility", "qualify", "requirement", "who can donate", "old enough", "weight"},
			Responses: []string{
				"Most healthy adults aged 18-65 who weigh at least 50kg can donate blood. You'll go through a quick health screening at the blood bank to confirm.",
				"To donate you should be 18-65 years old, weigh 50kg or more, and be in good general health. Recent tattoos, travel, or some medications may defer you temporarily.",
				"Blood donation is open to most healthy adults. If you've been feeling well, weigh over 50kg, and are between 18 and 65, you're very likely eligible!",
			},
		},
		{
			Category: CategoryAppointment,
			Keywords: []string{"appointment", "book", "schedule", "slot", "donate again", "next donation"},
			Responses: []string{
				"You can book a donation appointment through your donor dashboard, or just walk in to any partner blood bank during opening hours.",
				"Booking takes under a minute: pick a blood bank, choose a time slot, and you'll get a confirmation right away.",
			},
		},
		{
			Category: CategoryLocation,
			Keywords: []string{"where", "location", "blood bank", "center", "centre", "near me", "address"},
			Responses: []string{
				"We partner with blood banks across the region, most open Monday to Saturday.",
				"There's probably a donation center closer to you than you think.",
			},
		},
		{
			Category: CategoryPreparation,
			Keywords: []string{"prepare", "preparation", "before donating", "before donation", "what to eat", "drink"},
			Responses: []string{
				"Before donating: eat a proper meal, drink plenty of water, and get a full night's sleep. Avoid fatty foods and alcohol for 24 hours beforehand.",
				"Hydrate well, eat iron-rich foods in the days before your visit, and remember to bring a photo ID to your appointment.",
			},
		},
		{
			Category: CategoryAfterDonation,
			Keywords: []string{"after donating", "after donation", "recover", "rest", "dizzy", "feel faint"},
			Responses: []string{
				"After donating, rest for 10-15 minutes and enjoy the snacks provided. Drink extra fluids for the next 48 hours and skip heavy lifting today.",
				"A little tiredness is normal. If you feel dizzy, sit or lie down until it passes, and keep the bandage on for a few hours.",
			},
		},
		{
			Category: CategoryBloodTypes,
			Keywords: []string{"blood type", "blood group", "type o", "universal donor", "compatible", "rh factor"},
			Responses: []string{
				"There are 8 common blood types: A, B, AB and O, each either positive or negative. O negative is the universal red cell donor, AB positive the universal recipient.",
				"Your blood type is determined after your first donation and shown on your donor card. Every type is needed, but O negative is chronically short.",
			},
		},
		{
			Category: CategorySafety,
			Keywords: []string{"safe", "safety", "hurt", "pain", "needle", "risk", "infection"},
			Responses: []string{
				"Donating blood is very safe. A sterile, single-use needle is used for every donor, so there is no risk of infection.",
				"You might feel a brief pinch from the needle. Your body replaces the donated fluid within 48 hours.",
			},
		},
		{
			Category: CategoryGeneral,
			Keywords: []string{"hello", "hi", "hey", "thank"},
			Responses: []string{
				"I'm the DonorLink assistant! Ask me about eligibility, appointments, blood bank locations, preparation, or blood types.",
				"I can help with questions about donating blood: who can donate, how to book, where to go, and what to expect.",
				"Thanks for your interest in saving lives! Ask me anything about blood donation.",
			},
		},
	})
}

func newKnowledgeBase(entries []Entry) *KnowledgeBase {
	index := make(map[Category]int, len(entries))
	for i, e := range entries {
		index[e.Category] = i
	}
	return &KnowledgeBase{entries: entries, index: index}
}

// Entries returns the categories in classification priority order.
func (kb *KnowledgeBase) Entries() []Entry {
	return kb.entries
}

// Responses returns the canned responses for a category, falling back to the
// general category when the requested one is unknown.
func (kb *KnowledgeBase) Responses(category Category) []string {
	if i, ok := kb.index[category]; ok {
		return kb.entries[i].Responses
	}
	return kb.entries[kb.index[CategoryGeneral]].Responses
}
