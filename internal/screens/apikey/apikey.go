// Package apikey is the screen for entering or clearing the AI credential.
package apikey

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quantpath/internal/router"
	"github.com/abhisek/quantpath/internal/screen"
	"github.com/abhisek/quantpath/internal/ui/components"
	"github.com/abhisek/quantpath/internal/ui/layout"
	"github.com/abhisek/quantpath/internal/ui/theme"
)

// KeyScreen collects the API key. Submitting an empty value clears it.
type KeyScreen struct {
	env    screen.Env
	input  components.TextInput
	status string
	err    bool
}

var _ screen.Screen = (*KeyScreen)(nil)
var _ screen.KeyHintProvider = (*KeyScreen)(nil)
var _ screen.InputCapturer = (*KeyScreen)(nil)

// New creates a new KeyScreen.
func New(env screen.Env) *KeyScreen {
	return &KeyScreen{
		env:   env,
		input: components.NewTextInput("paste your API key", true, 60),
	}
}

func (k *KeyScreen) Init() tea.Cmd {
	return k.input.Init()
}

func (k *KeyScreen) Title() string {
	return "API Key"
}

func (k *KeyScreen) CapturingInput() bool {
	return true
}

func (k *KeyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (k *KeyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			return k, router.Pop()
		case "enter":
			return k, k.submit()
		}
	}
	var cmd tea.Cmd
	k.input, cmd = k.input.Update(msg)
	return k, cmd
}

func (k *KeyScreen) submit() tea.Cmd {
	key := k.input.Value()
	if err := k.env.Gateway.SetAPIKey(k.env.Ctx, key); err != nil {
		k.status, k.err = "Could not save the key: "+err.Error(), true
		return nil
	}
	k.input.Reset()
	if key == "" {
		k.status, k.err = "API key cleared.", false
		return nil
	}
	if !k.env.Gateway.HasKey() {
		k.status, k.err = "Key saved, but the AI client could not be built. Check the logs.", true
		return nil
	}
	return router.Pop()
}

func (k *KeyScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("AI credential"))
	b.WriteString("\n\n")

	switch {
	case k.env.Gateway.APIKey() != "":
		b.WriteString(theme.Done.Render("A key is stored. Entering a new one replaces it; an empty value clears it."))
	case k.env.Gateway.HasKey():
		b.WriteString(theme.Body.Render("Using the key from the environment. A stored key takes precedence."))
	default:
		b.WriteString(theme.Warning.Render("No key set. AI features are disabled."))
	}
	b.WriteString("\n\n")
	b.WriteString(k.input.View())
	b.WriteString("\n\n")

	if k.status != "" {
		if k.err {
			b.WriteString(theme.Warning.Render(k.status))
		} else {
			b.WriteString(theme.Done.Render(k.status))
		}
		b.WriteString("\n\n")
	}
	b.WriteString(theme.Hint.Render("Get a Gemini key at https://aistudio.google.com/apikey. It is stored locally."))
	return b.String()
}
