package deck

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/errs"
	"github.com/slidekit-lab/slidekit/pkg/domain/types"
)

// SlideType categorizes a slide within an outline
type SlideType string

const (
	SlideTypeTitle   SlideType = "title"
	SlideTypeContent SlideType = "content"
	SlideTypeSummary SlideType = "summary"
)

func (x SlideType) String() string {
	return string(x)
}

func (x SlideType) Validate() error {
	switch x {
	case SlideTypeTitle, SlideTypeContent, SlideTypeSummary:
		return nil
	}
	return goerr.New("unknown slide type", goerr.V("type", string(x)), goerr.T(errs.TagValidation))
}

const (
	maxBulletsPerSlide = 10
	maxSlidesPerDeck   = 20
)

// Slide is a single slide specification within an outline
type Slide struct {
	Type       SlideType `json:"type" yaml:"type"`
	Heading    string    `json:"heading" yaml:"heading"`
	Subheading string    `json:"subheading,omitempty" yaml:"subheading,omitempty"`
	Bullets    []string  `json:"bullets,omitempty" yaml:"bullets,omitempty"`
}

func (x *Slide) Validate() error {
	if err := x.Type.Validate(); err != nil {
		return err
	}
	if x.Heading == "" {
		return goerr.New("slide heading is empty", goerr.T(errs.TagValidation))
	}
	if len(x.Bullets) > maxBulletsPerSlide {
		return goerr.New("too many bullets",
			goerr.V("bullets", len(x.Bullets)),
			goerr.V("max", maxBulletsPerSlide),
			goerr.T(errs.TagValidation))
	}
	return nil
}

// Outline is the structured intermediate representation between a
// conversation (or topic) and the rendered presentation.
type Outline struct {
	Title  string  `json:"title" yaml:"title"`
	Slides []Slide `json:"slides" yaml:"slides"`
}

func (x *Outline) Validate() error {
	if x.Title == "" {
		return goerr.New("outline title is empty", goerr.T(errs.TagValidation))
	}
	if len(x.Slides) == 0 {
		return goerr.New("outline has no slides", goerr.T(errs.TagValidation))
	}
	if len(x.Slides) > maxSlidesPerDeck {
		return goerr.New("too many slides",
			goerr.V("slides", len(x.Slides)),
			goerr.V("max", maxSlidesPerDeck),
			goerr.T(errs.TagValidation))
	}
	for i, slide := range x.Slides {
		if err := slide.Validate(); err != nil {
			return goerr.Wrap(err, "invalid slide", goerr.V("index", i))
		}
	}
	return nil
}

// Clone returns a deep copy
func (x *Outline) Clone() *Outline {
	if x == nil {
		return nil
	}
	copied := *x
	copied.Slides = make([]Slide, len(x.Slides))
	for i, slide := range x.Slides {
		copied.Slides[i] = slide
		if slide.Bullets != nil {
			copied.Slides[i].Bullets = append([]string{}, slide.Bullets...)
		}
	}
	return &copied
}

// RenderResult is the output of a rendering collaborator before the bytes
// are persisted as an artifact.
type RenderResult struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Artifact describes a stored, downloadable presentation file
type Artifact struct {
	ID          types.ArtifactID `json:"id"`
	Filename    string           `json:"filename"`
	ContentType string           `json:"content_type"`
	Size        int64            `json:"size"`
	CreatedAt   time.Time        `json:"created_at"`
}
