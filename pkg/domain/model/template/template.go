package template

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
	"gopkg.in/yaml.v3"
)

// GuidedMode configures a template's conversational flow: the opening
// greeting, what the assistant must find out, and the system prompt for the
// conversation phase.
type GuidedMode struct {
	Enabled            bool     `yaml:"enabled" json:"enabled"`
	Greeting           string   `yaml:"greeting" json:"greeting"`
	RequiredInfo       []string `yaml:"required_info" json:"required_info"`
	ConversationPrompt string   `yaml:"conversation_system_prompt" json:"conversation_system_prompt"`
}

// Template is one presentation template: prompts for quick-mode generation
// plus an optional guided-mode configuration.
type Template struct {
	Key                types.TemplateKey `yaml:"-" json:"key"`
	Name               string            `yaml:"name" json:"name"`
	Description        string            `yaml:"description" json:"description"`
	SystemPrompt       string            `yaml:"system_prompt" json:"-"`
	PresentationPrompt string            `yaml:"presentation_prompt" json:"-"`
	Guided             *GuidedMode       `yaml:"guided_mode" json:"-"`
}

// GuidedEnabled reports whether the template supports guided conversations
func (x *Template) GuidedEnabled() bool {
	return x.Guided != nil && x.Guided.Enabled
}

// Defaults holds registry-wide default generation parameters
type Defaults struct {
	Template types.TemplateKey `yaml:"template" json:"template"`
	Language string            `yaml:"language" json:"language"`
	Slides   int               `yaml:"slides" json:"slides"`
}

// Registry is the set of templates loaded from a YAML definition file
type Registry struct {
	defaults  Defaults
	templates map[types.TemplateKey]*Template
	order     []types.TemplateKey
}

// Load parses a registry from YAML. Template iteration order follows the
// document order of the templates map.
func Load(data []byte) (*Registry, error) {
	var doc struct {
		Defaults  Defaults  `yaml:"defaults"`
		Templates yaml.Node `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse template registry", goerr.T(errs.TagValidation))
	}

	r := &Registry{
		defaults:  doc.Defaults,
		templates: make(map[types.TemplateKey]*Template),
	}
	if r.defaults.Language == "" {
		r.defaults.Language = "en"
	}
	if r.defaults.Slides == 0 {
		r.defaults.Slides = 5
	}

	// templates is a mapping node: key/value pairs alternate in Content
	if doc.Templates.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(doc.Templates.Content); i += 2 {
			key := types.TemplateKey(doc.Templates.Content[i].Value)
			var tmpl Template
			if err := doc.Templates.Content[i+1].Decode(&tmpl); err != nil {
				return nil, goerr.Wrap(err, "failed to parse template",
					goerr.V("key", key), goerr.T(errs.TagValidation))
			}
			tmpl.Key = key
			if tmpl.Name == "" {
				tmpl.Name = string(key)
			}
			r.templates[key] = &tmpl
			r.order = append(r.order, key)
		}
	}

	if len(r.templates) == 0 {
		return nil, goerr.New("template registry has no templates", goerr.T(errs.TagValidation))
	}
	if r.defaults.Template == types.EmptyTemplateKey {
		r.defaults.Template = r.order[0]
	}
	if _, ok := r.templates[r.defaults.Template]; !ok {
		return nil, goerr.New("default template is not defined",
			goerr.V("template", r.defaults.Template), goerr.T(errs.TagValidation))
	}

	return r, nil
}

// Defaults returns registry-wide default generation parameters
func (x *Registry) Defaults() Defaults {
	return x.defaults
}

// Get returns the template for key, or ErrTemplateNotFound
func (x *Registry) Get(key types.TemplateKey) (*Template, error) {
	if key == types.EmptyTemplateKey {
		key = x.defaults.Template
	}
	tmpl, ok := x.templates[key]
	if !ok {
		return nil, goerr.Wrap(errs.ErrTemplateNotFound, "unknown template key",
			goerr.V("template", key))
	}
	return tmpl, nil
}

// GetGuided returns the template for key only if guided mode is enabled
func (x *Registry) GetGuided(key types.TemplateKey) (*Template, error) {
	tmpl, err := x.Get(key)
	if err != nil {
		return nil, err
	}
	if !tmpl.GuidedEnabled() {
		return nil, goerr.Wrap(errs.ErrGuidedModeNotSupported, "guided mode is disabled",
			goerr.V("template", key))
	}
	return tmpl, nil
}

// List returns all templates in document order
func (x *Registry) List() []*Template {
	list := make([]*Template, 0, len(x.order))
	for _, key := range x.order {
		list = append(list, x.templates[key])
	}
	return list
}
