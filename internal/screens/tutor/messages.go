package tutor

import tutorsvc "github.com/abhisek/quantpath/internal/tutor"

// explainDoneMsg carries a finished concept explanation.
type explainDoneMsg struct {
	Concept string
	Text    string
}

// questionDoneMsg carries a generated interview question.
type questionDoneMsg struct {
	Question tutorsvc.InterviewQuestion
}

// recapDoneMsg carries a finished daily recap in Markdown.
type recapDoneMsg struct {
	Text string
}
