package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare object",
			raw:  `{"steps": []}`,
			want: `{"steps": []}`,
		},
		{
			name: "markdown fence",
			raw:  "Here is your roadmap:\n```json\n{\"steps\": [{\"title\": \"Start\"}]}\n```\nGood luck!",
			want: `{"steps": [{"title": "Start"}]}`,
		},
		{
			name: "braces inside strings",
			raw:  `prefix {"note": "use {curly} braces", "n": 1} suffix`,
			want: `{"note": "use {curly} braces", "n": 1}`,
		},
		{
			name: "escaped quote inside string",
			raw:  `{"text": "she said \"hi\" {today}"}`,
			want: `{"text": "she said \"hi\" {today}"}`,
		},
		{
			name: "nested objects",
			raw:  `{"a": {"b": {"c": 1}}}`,
			want: `{"a": {"b": {"c": 1}}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, json.Valid([]byte(got)))
		})
	}
}

func TestExtractJSONErrors(t *testing.T) {
	_, err := ExtractJSON("the model refused to answer")
	assert.EqualError(t, err, "no JSON object found in AI output")

	_, err = ExtractJSON(`{"oops": "never closed"`)
	assert.EqualError(t, err, "unbalanced JSON object in AI output")
}

func TestClientComplete(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "  {\"steps\": []}  "}},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", "test-model")
	client.baseURL = server.URL

	out, err := client.Complete(context.Background(), "plan my goal")
	require.NoError(t, err)
	assert.Equal(t, `{"steps": []}`, out, "output should be trimmed")
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "plan my goal", gotReq.Messages[0].Content)
}

func TestClientCompleteServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "model overloaded"},
		})
	}))
	defer server.Close()

	client := NewClient("test-key", "test-model")
	client.baseURL = server.URL

	_, err := client.Complete(context.Background(), "plan my goal")
	assert.EqualError(t, err, "AI service error: model overloaded")
}

func TestClientCompleteBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-key", "test-model")
	client.baseURL = server.URL

	_, err := client.Complete(context.Background(), "plan my goal")
	assert.EqualError(t, err, "AI service returned status 429")
}
