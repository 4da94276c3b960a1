package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/session"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/template"
	"github.com/slidekit-lab/slidekit/pkg/service/stream"
	"github.com/slidekit-lab/slidekit/pkg/utils/logging"
)

//go:embed templates.yaml
var defaultTemplates []byte

// LoadRegistry loads the template registry from path, falling back to the
// embedded defaults when path is empty.
func LoadRegistry(path string) (*template.Registry, error) {
	data := defaultTemplates
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read template file", goerr.V("path", path))
		}
		data = raw
		logging.Default().Info("loaded presentation templates", "path", path)
	}
	return template.Load(data)
}

// outlineSchema tells the model the exact JSON shape expected for a draft.
// Kept as one instruction block so the conversation and quick-mode paths
// stay consistent.
const outlineSchema = `Respond with only a JSON object in this exact shape:
{
  "title": "presentation title",
  "slides": [
    {"type": "title", "heading": "...", "subheading": "..."},
    {"type": "content", "heading": "...", "bullets": ["...", "..."]},
    {"type": "summary", "heading": "...", "bullets": ["..."]}
  ]
}
The first slide must have type "title" and the last type "summary".
Do not add any text before or after the JSON object.`

// ConversationSystem builds the system prompt for the information-gathering
// phase, including the readiness marker instruction.
func ConversationSystem(tmpl *template.Template) string {
	var b strings.Builder
	if tmpl.Guided != nil && tmpl.Guided.ConversationPrompt != "" {
		b.WriteString(strings.TrimSpace(tmpl.Guided.ConversationPrompt))
	} else {
		b.WriteString(strings.TrimSpace(tmpl.SystemPrompt))
	}
	b.WriteString("\n\n")

	if tmpl.Guided != nil && len(tmpl.Guided.RequiredInfo) > 0 {
		b.WriteString("You need to find out:\n")
		for _, info := range tmpl.Guided.RequiredInfo {
			b.WriteString("- " + info + "\n")
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Once you have all of this information, include the exact token %s in your reply. "+
		"Never mention the token to the user and never emit it before you have everything.",
		stream.DefaultMarker)
	return b.String()
}

// Transcript renders the conversation history as a plain prompt for a
// stateless completion call. The final user message is part of the history
// by the time this is called.
func Transcript(history []session.Turn) string {
	var b strings.Builder
	for _, turn := range history {
		switch turn.Role {
		case session.RoleUser:
			b.WriteString("User: ")
		case session.RoleAssistant:
			b.WriteString("Assistant: ")
		}
		b.WriteString(strings.TrimSpace(turn.Content))
		b.WriteString("\n")
	}
	b.WriteString("Assistant:")
	return b.String()
}

// Draft builds the outline-generation prompt from a finished conversation
func Draft(tmpl *template.Template, history []session.Turn) string {
	var b strings.Builder
	b.WriteString("Based on the conversation below, design a presentation outline.\n\n")
	b.WriteString("Conversation:\n")
	for _, turn := range history {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, strings.TrimSpace(turn.Content))
	}
	b.WriteString("\n")
	b.WriteString(outlineSchema)
	return b.String()
}

// DraftSystem returns the system prompt for outline generation
func DraftSystem(tmpl *template.Template) string {
	return strings.TrimSpace(tmpl.SystemPrompt)
}

// Quick builds the one-shot generation prompt from a bare topic. The
// template's presentation prompt carries {topic}, {language} and {slides}
// placeholders.
func Quick(tmpl *template.Template, topic, language string, slides int) string {
	body := strings.NewReplacer(
		"{topic}", topic,
		"{language}", language,
		"{slides}", strconv.Itoa(slides),
	).Replace(strings.TrimSpace(tmpl.PresentationPrompt))
	return body + "\n\n" + outlineSchema
}
