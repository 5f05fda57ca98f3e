package assist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"t12fmt/internal/logger"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	noMatch      = "NO_MATCH"
	periodLayout = "2006-01"
)

// ErrNoPeriod is returned when the model cannot find a month in the text.
var ErrNoPeriod = errors.New("no reporting period found")

// DateAssistant asks a Gemini model for the reporting period of a date cell
// that none of the built-in formats understood.
type DateAssistant struct {
	client   *genai.Client
	generate func(ctx context.Context, prompt string) (string, error)
	timeout  time.Duration
}

// NewDateAssistant creates a Gemini backed assistant.
func NewDateAssistant(apiKey, modelName string, timeout time.Duration) (*DateAssistant, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	logger.Info("Initializing date assistant with Gemini API", "model", modelName)

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		logger.Error("Failed to create Gemini client", "error", err)
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0) // one correct answer

	return &DateAssistant{
		client: client,
		generate: func(ctx context.Context, prompt string) (string, error) {
			resp, err := model.GenerateContent(ctx, genai.Text(prompt))
			if err != nil {
				return "", err
			}
			return responseText(resp)
		},
		timeout: timeout,
	}, nil
}

// Close releases the Gemini client.
func (a *DateAssistant) Close() error {
	if a.client != nil {
		logger.Debug("Closing date assistant client")
		return a.client.Close()
	}
	return nil
}

// ResolvePeriod returns the first day of the month text refers to.
func (a *DateAssistant) ResolvePeriod(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, ErrNoPeriod
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	start := time.Now()
	answer, err := a.generate(ctx, buildPeriodPrompt(text))
	if err != nil {
		logger.Error("Gemini API request failed", "error", err, "duration", time.Since(start))
		return time.Time{}, fmt.Errorf("failed to resolve period: %w", err)
	}

	logger.Debug("Received period from Gemini API", "answer", answer, "duration", time.Since(start))
	return parsePeriodAnswer(answer)
}

func buildPeriodPrompt(text string) string {
	var b strings.Builder
	b.WriteString(`You read the date line of a trailing twelve month (T12) property financial report.

TASK: Give the month and year the report period ends in.

DATE LINE:
`)
	b.WriteString(text)
	b.WriteString(`

OUTPUT FORMAT: a single line, either YYYY-MM or NO_MATCH if no month and year can be determined.

EXAMPLES:
Period ending March 2024|2024-03
Twelve months thru 12/31/23|2023-12
Draft|NO_MATCH

Answer:`)
	return b.String()
}

// parsePeriodAnswer accepts the first non-empty line of the model's answer.
func parsePeriodAnswer(answer string) (time.Time, error) {
	for _, line := range strings.Split(answer, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "`\"'.")
		if line == "" {
			continue
		}
		if line == noMatch {
			return time.Time{}, ErrNoPeriod
		}
		if i := strings.LastIndex(line, "|"); i >= 0 {
			line = strings.TrimSpace(line[i+1:])
		}
		period, err := time.Parse(periodLayout, line)
		if err != nil {
			return time.Time{}, fmt.Errorf("unexpected answer %q: %w", line, err)
		}
		return period, nil
	}
	return time.Time{}, ErrNoPeriod
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response generated from AI")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

// GetGeminiAPIKey gets the API key from environment variable
func GetGeminiAPIKey() string {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY environment variable not set")
	}
	return apiKey
}
