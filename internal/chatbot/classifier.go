package chatbot

import "strings"

// Classifier maps free-text messages to a Category by keyword containment.
// First matching category wins, so the knowledge base order acts as the
// priority. No scoring, no confidence threshold.
type Classifier struct {
	kb *KnowledgeBase
}

func NewClassifier(kb *KnowledgeBase) *Classifier {
	return &Classifier{kb: kb}
}

// Classify returns the first category any of whose keywords appears as a
// substring of the lowercased message, or general when nothing matches.
func (c *Classifier) Classify(message string) Category {
	normalized := strings.ToLower(message)
	for _, entry := range c.kb.Entries() {
		for _, keyword := range entry.Keywords {
			if strings.Contains(normalized, keyword) {
				return entry.Category
			}
		}
	}
	return CategoryGeneral
}
