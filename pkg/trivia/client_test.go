package trivia

import (
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"response_code": 0,
	"results": [{
		"category": "Science%3A%20Computers",
		"type": "multiple",
		"difficulty": "easy",
		"question": "What%20does%20CPU%20stand%20for%3F",
		"correct_answer": "Central%20Processing%20Unit",
		"incorrect_answers": [
			"Central%20Process%20Unit",
			"Computer%20Personal%20Unit",
			"Central%20Processor%20Unit"
		]
	}]
}`

func TestFetchDecodesAndShuffles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("amount"))
		assert.Equal(t, "multiple", r.URL.Query().Get("type"))
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	client := NewClient().
		WithBaseURL(srv.URL).
		WithRand(rand.New(rand.NewSource(1)))

	q, err := client.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Science: Computers", q.Category)
	assert.Equal(t, "easy", q.Difficulty)
	assert.Equal(t, "What does CPU stand for?", q.Prompt)
	require.Len(t, q.Options, 4)
	assert.Equal(t, "Central Processing Unit", q.Correct())
	assert.Contains(t, q.Options, "Central Processing Unit")
}

func TestFetchEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"response_code": 1, "results": []}`))
	}))
	defer srv.Close()

	client := NewClient().WithBaseURL(srv.URL)

	_, err := client.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient().WithBaseURL(srv.URL)

	_, err := client.Fetch(context.Background())
	assert.Error(t, err)
}
