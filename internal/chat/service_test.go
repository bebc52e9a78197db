package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jetbook/jetbook/internal/logging"
)

type stubConcierge struct {
	result ConciergeResult
	err    error
	calls  int
}

func (s *stubConcierge) Concierge(context.Context, string) (ConciergeResult, error) {
	s.calls++
	return s.result, s.err
}

func TestProcessMessageGreetingIsLocal(t *testing.T) {
	stub := &stubConcierge{}
	svc := NewService(stub, logging.Discard())

	reply := svc.ProcessMessage(context.Background(), "u-1", "hello there")
	require.Equal(t, statusSuccess, reply.Status)
	require.NotNil(t, reply.Response)
	require.Equal(t, greetingText, reply.Response.Text)
	require.Equal(t, string(IntentGreeting), reply.Metadata.Intent)
	require.Zero(t, stub.calls, "greetings must not reach the concierge")
}

func TestProcessMessageProxiesToConcierge(t *testing.T) {
	stub := &stubConcierge{result: ConciergeResult{
		Success:    true,
		Message:    "Here are your bookings.",
		Intent:     "check_booking",
		Confidence: 0.92,
	}}
	svc := NewService(stub, logging.Discard())

	reply := svc.ProcessMessage(context.Background(), "u-1", "check my booking")
	require.Equal(t, statusSuccess, reply.Status)
	require.Equal(t, "Here are your bookings.", reply.Response.Text)
	require.Equal(t, "check_booking", reply.Metadata.Intent)
	require.Equal(t, 0.92, reply.Metadata.Confidence)
	require.Equal(t, 1, stub.calls)
}

func TestProcessMessageConciergeFailureIsFriendly(t *testing.T) {
	stub := &stubConcierge{err: errors.New("connection refused")}
	svc := NewService(stub, logging.Discard())

	reply := svc.ProcessMessage(context.Background(), "u-1", "book a jet to Paris")
	require.Equal(t, statusError, reply.Status)
	require.Equal(t, unavailableText, reply.Message)
	require.Nil(t, reply.Response)
	require.Equal(t, string(IntentBookJet), reply.Metadata.Intent)
}

func TestMCPClientConcierge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/ai/concierge", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "show me jets", req["message"])

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Three jets are available.",
			"intent":  "get_jet_info",
		})
	}))
	defer srv.Close()

	client := NewMCPClient(srv.URL)
	result, err := client.Concierge(context.Background(), "show me jets")
	require.NoError(t, err)
	require.Equal(t, "Three jets are available.", result.Message)
	require.Equal(t, "get_jet_info", result.Intent)
}

func TestMCPClientRejectsFailurePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "no handler"})
	}))
	defer srv.Close()

	client := NewMCPClient(srv.URL)
	_, err := client.Concierge(context.Background(), "do something odd")
	require.Error(t, err)
}
