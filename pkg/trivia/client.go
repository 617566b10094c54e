package trivia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/darkangel/imperialbot/pkg/games"
)

const defaultBaseURL = "https://opentdb.com/api.php"

var ErrNoQuestions = errors.New("trivia service returned no questions")

// Question is one decoded multiple-choice question with shuffled options
type Question struct {
	Category     string
	Difficulty   string
	Prompt       string
	Options      []string
	CorrectIndex int
}

// Correct returns the right answer
func (q Question) Correct() string {
	return q.Options[q.CorrectIndex]
}

// Client fetches questions from the Open Trivia Database
type Client struct {
	httpClient *http.Client
	baseURL    string
	rng        *rand.Rand
}

// NewClient creates a trivia client with sane timeouts
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// WithRand overrides the shuffle source. Used by tests.
func (c *Client) WithRand(rng *rand.Rand) *Client {
	c.rng = rng
	return c
}

// apiResponse is the raw Open Trivia DB payload. Fields arrive URL-encoded
// because we request encode=url3986.
type apiResponse struct {
	ResponseCode int `json:"response_code"`
	Results      []struct {
		Category         string   `json:"category"`
		Difficulty       string   `json:"difficulty"`
		Question         string   `json:"question"`
		CorrectAnswer    string   `json:"correct_answer"`
		IncorrectAnswers []string `json:"incorrect_answers"`
	} `json:"results"`
}

// Fetch retrieves one multiple-choice question and shuffles its options
func (c *Client) Fetch(ctx context.Context) (*Question, error) {
	endpoint := c.baseURL + "?amount=1&type=multiple&encode=url3986"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error building trivia request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching trivia question: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trivia service returned status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("error decoding trivia response: %w", err)
	}

	if payload.ResponseCode != 0 || len(payload.Results) == 0 {
		return nil, ErrNoQuestions
	}

	raw := payload.Results[0]

	prompt, err := url.QueryUnescape(raw.Question)
	if err != nil {
		return nil, fmt.Errorf("error decoding question text: %w", err)
	}
	category, err := url.QueryUnescape(raw.Category)
	if err != nil {
		return nil, fmt.Errorf("error decoding category: %w", err)
	}
	correct, err := url.QueryUnescape(raw.CorrectAnswer)
	if err != nil {
		return nil, fmt.Errorf("error decoding correct answer: %w", err)
	}

	wrong := make([]string, 0, len(raw.IncorrectAnswers))
	for _, enc := range raw.IncorrectAnswers {
		answer, err := url.QueryUnescape(enc)
		if err != nil {
			return nil, fmt.Errorf("error decoding answer: %w", err)
		}
		wrong = append(wrong, answer)
	}

	options, correctIndex := games.ShuffleAnswers(c.rng, correct, wrong)

	return &Question{
		Category:     category,
		Difficulty:   raw.Difficulty,
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: correctIndex,
	}, nil
}
