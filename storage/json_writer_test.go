package storage

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobspy-client/models"
)

func TestJSONWriterRoundTrip(t *testing.T) {
	jobs := []models.JobResult{
		{
			ID:           models.Ptr("in-1"),
			Site:         models.Ptr("indeed"),
			Title:        models.Ptr("Backend <Go> Engineer"),
			MinAmount:    models.Ptr(50000.0),
			MaxAmount:    models.Ptr(70000.0),
			IsRemote:     models.Ptr(false),
			Description:  models.Ptr("**Great** team & \"fun\""),
			VacancyCount: models.Ptr(3),
		},
		{JobURL: models.Ptr("https://example.com/2")},
	}

	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter(&buf).Write(jobs))

	var back []models.JobResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, jobs, back)
}

func TestJSONWriterIndentsWithTwoSpaces(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter(&buf).Write([]models.JobResult{{Title: models.Ptr("A")}}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[\n  {\n    \"id\": null,"), out)
	assert.Contains(t, out, `"title": "A"`)
}

func TestJSONWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter(&buf).Write(nil))
	assert.Equal(t, "[]\n", buf.String())
}
