package services

import (
	"encoding/json"
	"testing"

	"github.com/spoorthyhm/dreampath/pkg/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoadmapPayloadParsesModelOutput(t *testing.T) {
	// A representative model answer, prose and fences included.
	raw := "Sure! Here is your roadmap:\n```json\n" + `{
  "steps": [
    {
      "stepNumber": 1,
      "title": "Learn chords",
      "description": "Master open chords",
      "duration": "2 weeks",
      "tasks": {
        "daily": ["Practice 20 minutes"],
        "weekly": ["Learn one new song"]
      },
      "tools": ["Guitar", "Tuner"],
      "resources": {
        "youtube": ["https://youtube.com/lesson1"],
        "courses": ["https://example.com/course"]
      },
      "completed": false
    },
    {
      "stepNumber": 2,
      "title": "Barre chords",
      "completed": false
    }
  ],
  "finalChecklist": ["Play a full song", "Record yourself"]
}` + "\n```"

	span, err := ai.ExtractJSON(raw)
	require.NoError(t, err)

	var payload roadmapPayload
	require.NoError(t, json.Unmarshal([]byte(span), &payload))

	require.Len(t, payload.Steps, 2)
	first := payload.Steps[0]
	assert.Equal(t, 1, first.StepNumber)
	assert.Equal(t, "Learn chords", first.Title)
	assert.Equal(t, "Master open chords", first.Description)
	assert.Equal(t, "2 weeks", first.Duration)
	assert.Equal(t, []string{"Practice 20 minutes"}, first.Tasks.Daily)
	assert.Equal(t, []string{"Learn one new song"}, first.Tasks.Weekly)
	assert.Equal(t, []string{"Guitar", "Tuner"}, first.Tools)
	assert.Equal(t, []string{"https://youtube.com/lesson1"}, first.Resources.YouTube)
	assert.False(t, first.Completed)

	assert.Equal(t, "Barre chords", payload.Steps[1].Title)
	assert.Equal(t, []string{"Play a full song", "Record yourself"}, payload.FinalChecklist)
}

func TestRoadmapPromptMentionsGoalAndStructure(t *testing.T) {
	// The prompt carries the contract the parser relies on.
	assert.Contains(t, roadmapPromptTemplate, `"steps"`)
	assert.Contains(t, roadmapPromptTemplate, `"finalChecklist"`)
	assert.Contains(t, roadmapPromptTemplate, "ONLY RETURN JSON")
}
