// Package gemini produces the free-text liquidity report from a checks
// snapshot. It is an external collaborator of the ledger: unreachable or
// unconfigured service degrades to a fixed fallback string, never an error
// the caller has to handle.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"tisa/internal/ledger/models"
	"tisa/internal/logger"
)

const (
	defaultModel = "gemini-2.5-flash"

	systemInstruction = "شما دستیار هوشمند سیستم مدیریت چک تیسا هستید. صمیمی، حرفه‌ای و دقیق پاسخ دهید."

	// Fallback returned when the service is unreachable or unconfigured.
	Fallback = "در حال حاضر امکان تحلیل هوشمند وجود ندارد."
	// Empty response from the model.
	emptyResult = "خطا در تحلیل هوشمند."
)

// Analyst asks Gemini for a short management report over the ledger.
type Analyst struct {
	client *genai.Client
	model  string
}

// NewAnalyst creates the Gemini client. Credentials come from the
// environment (GEMINI_API_KEY); model may be empty for the default.
func NewAnalyst(ctx context.Context, model string) (*Analyst, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	return &Analyst{client: client, model: model}, nil
}

// Analyze returns a Persian management report for the given checks, or the
// fallback string on any failure.
func (a *Analyst) Analyze(ctx context.Context, checks []models.Check) string {
	resp, err := a.client.Models.GenerateContent(ctx, a.model, genai.Text(buildPrompt(checks)), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
	})
	if err != nil {
		logger.L().Errorf("Gemini analysis failed: %v", err)
		return Fallback
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return emptyResult
	}
	return text
}

func buildPrompt(checks []models.Check) string {
	lines := make([]string, 0, len(checks))
	for _, c := range checks {
		lines = append(lines, fmt.Sprintf("چک شماره %s به مبلغ %d ریال با سررسید %s (%s)",
			c.CheckNumber, c.Amount, c.DueDate.Format("2006-01-02"), c.Status))
	}

	return fmt.Sprintf(`شما یک تحلیلگر مالی هوشمند هستید. لیست چک‌های زیر را بررسی کنید و یک گزارش کوتاه مدیریتی به زبان فارسی ارائه دهید.
موارد مهم شامل: چک‌های نزدیک به سررسید، مجموع بدهی‌های بحرانی و پیشنهادهایی برای مدیریت نقدینگی.

لیست چک‌ها:
%s`, strings.Join(lines, "\n"))
}
