package tutor

import "os"

// DefaultLanguage is the language answers are written in.
const DefaultLanguage = "Traditional Chinese"

// Config holds tutor generation settings.
type Config struct {
	// Language the model is asked to answer in.
	Language string

	// EnvAPIKey is used when no credential has been stored.
	EnvAPIKey string

	ExplainMaxTokens    int
	QuestionMaxTokens   int
	SummaryMaxTokens    int
	Temperature         float64
	QuestionTemperature float64
}

// DefaultConfig returns sensible defaults for tutor requests.
func DefaultConfig() Config {
	return Config{
		Language:            DefaultLanguage,
		ExplainMaxTokens:    1024,
		QuestionMaxTokens:   2048,
		SummaryMaxTokens:    2048,
		Temperature:         0.4,
		QuestionTemperature: 0.9,
	}
}

// ConfigFromEnv applies QUANTPATH_AI_LANGUAGE over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if l := os.Getenv("QUANTPATH_AI_LANGUAGE"); l != "" {
		cfg.Language = l
	}
	return cfg
}
