package tutor

import "github.com/abhisek/quantpath/internal/llm"

// InterviewQuestionSchema constrains interview question generation. Field
// order matters to Gemini, which writes properties in the order given.
var InterviewQuestionSchema = &llm.Schema{
	Name:        "interview-question",
	Description: "A quant interview question with a worked solution",
	Fields: []llm.Field{
		{Name: "question", Description: "The interview question as it would be asked"},
		{Name: "answer", Description: "Detailed solution with the full derivation"},
	},
}
