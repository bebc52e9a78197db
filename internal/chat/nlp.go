package chat

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent is the classified purpose of a chat message.
type Intent string

const (
	IntentBookJet       Intent = "book_jet"
	IntentCheckBooking  Intent = "check_booking"
	IntentCancelBooking Intent = "cancel_booking"
	IntentGetJetInfo    Intent = "get_jet_info"
	IntentGreeting      Intent = "greeting"
	IntentUnknown       Intent = "unknown"
)

// Entities are structured fragments pulled out of a message.
type Entities struct {
	Dates          []string `json:"dates,omitempty"`
	Locations      []string `json:"locations,omitempty"`
	PassengerCount int      `json:"passenger_count,omitempty"`
}

type intentPatterns struct {
	intent   Intent
	patterns []*regexp.Regexp
}

// Classifier matches messages against fixed intent patterns.
type Classifier struct {
	intents    []intentPatterns
	dates      *regexp.Regexp
	locations  *regexp.Regexp
	passengers *regexp.Regexp
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// NewClassifier builds the pattern set. Order matters: the first matching
// intent wins.
func NewClassifier() *Classifier {
	return &Classifier{
		intents: []intentPatterns{
			{IntentBookJet, compileAll(
				`(book|reserve|schedule).*(jet|flight|trip)`,
				`i want to (book|reserve).*jet`,
				`schedule a flight`,
			)},
			{IntentCheckBooking, compileAll(
				`(check|view|see) my (booking|reservation)`,
				`when is my (flight|trip)`,
				`(details|info) about my booking`,
			)},
			{IntentCancelBooking, compileAll(
				`cancel my (booking|reservation|flight)`,
				`i want to cancel`,
				`need to cancel`,
			)},
			{IntentGetJetInfo, compileAll(
				`(what|which) jets are available`,
				`show me (jets|planes)`,
				`(list|show) available jets`,
			)},
			{IntentGreeting, compileAll(
				`\b(hi|hello|hey|greetings)\b`,
				`good (morning|afternoon|evening)`,
				`how are you`,
			)},
		},
		dates:      regexp.MustCompile(`(?i)(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})|(tomorrow|today|next week|next month)`),
		// The name must be followed by whitespace and "on", "for" or the end
		// of input, which keeps trailing verbs out of the captured name.
		locations:  regexp.MustCompile(`(?i)(from|to|in|at)\s+([A-Z][a-zA-Z ]+?)\s+(?:on|for|$)`),
		passengers: regexp.MustCompile(`(?i)(\d+)\s+(passenger|person|people|adult|adults)`),
	}
}

// Classify returns the first matching intent and a confidence score. Intents
// with fewer patterns score slightly higher because each pattern is more
// specific.
func (c *Classifier) Classify(text string) (Intent, float64) {
	text = strings.ToLower(text)
	for _, ip := range c.intents {
		for _, p := range ip.patterns {
			if p.MatchString(text) {
				confidence := 0.7 + 0.3/float64(len(ip.patterns)+1)
				if confidence > 1.0 {
					confidence = 1.0
				}
				return ip.intent, confidence
			}
		}
	}
	return IntentUnknown, 0.3
}

// ExtractEntities pulls dates, locations and passenger counts from the text.
func (c *Classifier) ExtractEntities(text string) Entities {
	var ents Entities
	for _, m := range c.dates.FindAllStringSubmatch(text, -1) {
		if m[1] != "" {
			ents.Dates = append(ents.Dates, m[1])
		} else if m[2] != "" {
			ents.Dates = append(ents.Dates, m[2])
		}
	}
	for _, m := range c.locations.FindAllStringSubmatch(text, -1) {
		loc := strings.TrimSpace(m[2])
		if loc != "" {
			ents.Locations = append(ents.Locations, loc)
		}
	}
	if m := c.passengers.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			ents.PassengerCount = n
		}
	}
	return ents
}
