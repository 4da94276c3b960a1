package template_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/template"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
)

const testRegistryYAML = `
defaults:
  template: general
  language: en
  slides: 5

templates:
  general:
    name: General
    description: All-purpose deck
    system_prompt: You are a presentation designer.
    presentation_prompt: "Create a deck about {topic} in {language} with {slides} slides."
    guided_mode:
      enabled: true
      greeting: "Hi! What is your presentation about?"
      required_info:
        - topic
        - audience
        - goal
      conversation_system_prompt: "Gather topic, audience and goal."
  project_init:
    name: Project Kickoff
    description: Project kickoff deck
    system_prompt: You design kickoff decks.
    presentation_prompt: "Create a kickoff deck about {topic}."
  minutes:
    name: Meeting Minutes
    system_prompt: You summarize meetings.
    presentation_prompt: "Summarize: {topic}"
    guided_mode:
      enabled: false
      greeting: unused
`

func TestLoadRegistry(t *testing.T) {
	r := gt.R1(template.Load([]byte(testRegistryYAML))).NoError(t)

	gt.V(t, r.Defaults().Template).Equal(types.TemplateKey("general"))
	gt.V(t, r.Defaults().Language).Equal("en")
	gt.V(t, r.Defaults().Slides).Equal(5)

	list := r.List()
	gt.A(t, list).Length(3)
	// Document order is preserved
	gt.V(t, list[0].Key).Equal(types.TemplateKey("general"))
	gt.V(t, list[1].Key).Equal(types.TemplateKey("project_init"))
	gt.V(t, list[2].Key).Equal(types.TemplateKey("minutes"))

	tmpl := gt.R1(r.Get("general")).NoError(t)
	gt.V(t, tmpl.Name).Equal("General")
	gt.True(t, tmpl.GuidedEnabled())
	gt.A(t, tmpl.Guided.RequiredInfo).Length(3)
	gt.V(t, tmpl.Guided.Greeting).Equal("Hi! What is your presentation about?")

	// Name falls back to the key when omitted
	minutes := gt.R1(r.Get("minutes")).NoError(t)
	gt.V(t, minutes.Name).Equal("Meeting Minutes")
}

func TestGetFallsBackToDefault(t *testing.T) {
	r := gt.R1(template.Load([]byte(testRegistryYAML))).NoError(t)

	tmpl := gt.R1(r.Get(types.EmptyTemplateKey)).NoError(t)
	gt.V(t, tmpl.Key).Equal(types.TemplateKey("general"))
}

func TestGetUnknownTemplate(t *testing.T) {
	r := gt.R1(template.Load([]byte(testRegistryYAML))).NoError(t)

	_, err := r.Get("no_such_template")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, errs.ErrTemplateNotFound))
}

func TestGetGuided(t *testing.T) {
	r := gt.R1(template.Load([]byte(testRegistryYAML))).NoError(t)

	t.Run("enabled", func(t *testing.T) {
		tmpl := gt.R1(r.GetGuided("general")).NoError(t)
		gt.V(t, tmpl.Key).Equal(types.TemplateKey("general"))
	})

	t.Run("no guided_mode block", func(t *testing.T) {
		_, err := r.GetGuided("project_init")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, errs.ErrGuidedModeNotSupported))
	})

	t.Run("explicitly disabled", func(t *testing.T) {
		_, err := r.GetGuided("minutes")
		gt.Error(t, err)
		gt.True(t, errors.Is(err, errs.ErrGuidedModeNotSupported))
	})
}

func TestLoadInvalidRegistry(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		_, err := template.Load([]byte("defaults:\n  language: en\n"))
		gt.Error(t, err)
	})

	t.Run("broken yaml", func(t *testing.T) {
		_, err := template.Load([]byte("templates: [unclosed"))
		gt.Error(t, err)
	})

	t.Run("default points at missing template", func(t *testing.T) {
		_, err := template.Load([]byte("defaults:\n  template: ghost\ntemplates:\n  general:\n    system_prompt: x\n"))
		gt.Error(t, err)
	})
}
