package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/blackwell-systems/vitalwatch/internal/retrieval"
)

// systemPrompt constrains the model to the evidence block. The grounding
// text carries only relative phrasing, so answers cannot leak calendar
// dates the user never saw.
const systemPrompt = `You are a personal health data assistant. You answer questions about the user's WHOOP biometric data using ONLY the evidence provided in the user message.

Rules:
- Every claim must be backed by a line in the evidence block. Do not estimate, extrapolate, or fill gaps from general health knowledge.
- Use the relative time phrasing from the evidence ("most recently", "in recent days") rather than inventing dates.
- Keep the interpretation labels ([Green/high], [moderate], etc.) in mind when characterizing values, but answer in plain language.
- If the evidence does not cover the question, say so plainly and suggest what data would help.
- Be concise: a few sentences, not a report.`

// declineMessage is returned without calling the provider when retrieval
// found nothing relevant.
const declineMessage = "I don't have any health data matching that question. Try asking about recovery, sleep, strain, or heart rate metrics, or check that your export directory contains recent CSV files."

// BuildPrompt renders the user message from the question and its grounding
// summary.
func BuildPrompt(question string, summary retrieval.Summary) string {
	var sb strings.Builder
	sb.WriteString("## Evidence\n\n")
	sb.WriteString(summary.Text)
	sb.WriteString("\n## Question\n\n")
	sb.WriteString(question)
	return sb.String()
}

// Ask answers a question grounded on the summary. An empty evidence set
// short-circuits to a decline; the provider is never called on ungrounded
// questions.
func Ask(ctx context.Context, p Provider, question string, summary retrieval.Summary) (string, error) {
	if len(summary.Evidence) == 0 {
		return declineMessage, nil
	}

	answer, err := p.Complete(ctx, systemPrompt, BuildPrompt(question, summary))
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
