package chat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		text string
		want Intent
	}{
		{"I want to book a jet to Paris", IntentBookJet},
		{"please schedule a flight for me", IntentBookJet},
		{"Reserve a trip for 4 people", IntentBookJet},
		{"check my booking please", IntentCheckBooking},
		{"when is my flight?", IntentCheckBooking},
		{"details about my booking", IntentCheckBooking},
		{"cancel my reservation", IntentCancelBooking},
		{"I need to cancel", IntentCancelBooking},
		{"what jets are available?", IntentGetJetInfo},
		{"show me planes", IntentGetJetInfo},
		{"hello there", IntentGreeting},
		{"good morning", IntentGreeting},
		{"how are you", IntentGreeting},
		{"what's the weather like", IntentUnknown},
		{"", IntentUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			intent, confidence := c.Classify(tc.text)
			require.Equal(t, tc.want, intent)
			if tc.want == IntentUnknown {
				require.InDelta(t, 0.3, confidence, 0.001)
			} else {
				require.Greater(t, confidence, 0.5)
			}
		})
	}
}

func TestExtractEntities(t *testing.T) {
	c := NewClassifier()

	ents := c.ExtractEntities("book a jet from Geneva on 12/24/2026 for 4 passengers")
	require.Contains(t, ents.Dates, "12/24/2026")
	require.Contains(t, ents.Locations, "Geneva")
	require.Equal(t, 4, ents.PassengerCount)

	ents = c.ExtractEntities("Flying From New York on Friday")
	require.Contains(t, ents.Locations, "New York")

	ents = c.ExtractEntities("I want to fly tomorrow")
	require.Contains(t, ents.Dates, "tomorrow")
	require.Zero(t, ents.PassengerCount)

	ents = c.ExtractEntities("nothing to see here")
	require.Empty(t, ents.Dates)
	require.Empty(t, ents.Locations)
	require.Zero(t, ents.PassengerCount)
}
