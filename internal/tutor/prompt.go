package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/quantpath/internal/progress"
)

const explainSystemPrompt = `You are a senior quantitative researcher mentoring a student with a science and engineering background.`

const questionSystemPrompt = `You write interview questions for top quantitative trading firms such as Jane Street and Citadel.`

const summarySystemPrompt = `You are a study assistant for a quantitative trading curriculum.`

func buildExplainMessage(concept, background, language string) string {
	var b strings.Builder

	b.WriteString("Explain the following concept.\n\n")
	fmt.Fprintf(&b, "Concept: %s\n", concept)
	fmt.Fprintf(&b, "Context: %s\n\n", background)
	b.WriteString("Requirements:\n")
	fmt.Fprintf(&b, "1. Be clear and concise. Write in %s.\n", language)
	b.WriteString("2. Write any formulas in LaTeX, e.g. $E=mc^2$.\n")
	b.WriteString("3. Emphasise how the concept is used in high-frequency trading or market making.\n")
	b.WriteString("4. Keep it under 300 words.\n")

	return b.String()
}

func buildQuestionMessage(language string) string {
	var b strings.Builder

	b.WriteString("Generate one interview question of the kind asked at a top quant hedge fund.\n")
	b.WriteString("It may be about probability, statistics, a brain teaser or algorithm design.\n\n")
	b.WriteString("Reply with a JSON object of the form:\n")
	b.WriteString(`{"question": "the question...", "answer": "detailed solution and derivation..."}`)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Write the content in %s.\n", language)

	return b.String()
}

// FormatLogs renders notes one per line as "[TYPE] content".
func FormatLogs(logs []progress.LogEntry) string {
	lines := make([]string, len(logs))
	for i, l := range logs {
		lines[i] = fmt.Sprintf("[%s] %s", strings.ToUpper(l.Type), l.Content)
	}
	return strings.Join(lines, "\n")
}

func buildSummaryMessage(logs []progress.LogEntry, dayTitle, language string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Today the learner studied %q. These are their scattered notes:\n\n", dayTitle)
	b.WriteString(FormatLogs(logs))
	b.WriteString("\n\n")
	b.WriteString("Turn them into a structured Daily Recap in Markdown with these sections:\n")
	b.WriteString("1. **Key Concepts**: the mathematical or financial theory covered today.\n")
	b.WriteString("2. **Implementation**: what code was written and which libraries (NumPy/Pandas) were used.\n")
	b.WriteString("3. **Debug Log**: errors hit and how they were fixed. Highlight any bug notes.\n")
	b.WriteString("4. **Action Items**: what to dig into or improve tomorrow.\n\n")
	fmt.Fprintf(&b, "Write in %s. Keep it concise and professional so it is quick to review later.\n", language)

	return b.String()
}
