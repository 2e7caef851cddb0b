package llm

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestSchema_Definition(t *testing.T) {
	def := questionSchema().Definition()

	if def["type"] != "object" || def["additionalProperties"] != false {
		t.Errorf("definition = %v", def)
	}
	if got := def["required"]; !reflect.DeepEqual(got, []string{"question", "answer"}) {
		t.Errorf("required = %v", got)
	}
	props := def["properties"].(map[string]any)
	if len(props) != 2 {
		t.Fatalf("properties = %v", props)
	}
	answer := props["answer"].(map[string]any)
	if answer["type"] != "string" || answer["description"] != "The derivation" {
		t.Errorf("answer property = %v", answer)
	}
}

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		invalid bool
	}{
		{name: "plain object", raw: `{"question":"Monty Hall?","answer":"Switch."}`, want: `{"question":"Monty Hall?","answer":"Switch."}`},
		{name: "surrounding space", raw: "\n  {\"question\":\"q\",\"answer\":\"a\"}\n", want: `{"question":"q","answer":"a"}`},
		{name: "json fence", raw: "```json\n{\"question\":\"q\",\"answer\":\"a\"}\n```", want: `{"question":"q","answer":"a"}`},
		{name: "bare fence", raw: "```\n{\"question\":\"q\",\"answer\":\"a\"}\n```", want: `{"question":"q","answer":"a"}`},
		{name: "missing answer", raw: `{"question":"What is VWAP?"}`, invalid: true},
		{name: "extra field", raw: `{"question":"q","answer":"a","difficulty":"hard"}`, invalid: true},
		{name: "non-string answer", raw: `{"question":"Sharpe?","answer":2}`, invalid: true},
		{name: "malformed", raw: `{not json}`, invalid: true},
		{name: "empty", raw: ``, invalid: true},
		{name: "unterminated fence", raw: "```{\"question\":\"q\"", invalid: true},
	}

	schema := questionSchema()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := schema.Validate(json.RawMessage(tt.raw))
			if tt.invalid {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %v", err)
				}
				if string(inv.Content) != tt.raw {
					t.Errorf("error should carry the reply as received, got %q", inv.Content)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Validate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSchema_CompilesOnce(t *testing.T) {
	schema := questionSchema()
	first, err := schema.compile()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	second, _ := schema.compile()
	if first != second {
		t.Error("compiled schema should be reused")
	}
}
