package deck_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/slidekit-lab/slidekit/pkg/domain/model/deck"
)

func validOutline() *deck.Outline {
	return &deck.Outline{
		Title: "Launch Plan",
		Slides: []deck.Slide{
			{Type: deck.SlideTypeTitle, Heading: "Launch Plan", Subheading: "2025"},
			{Type: deck.SlideTypeContent, Heading: "Timeline", Bullets: []string{"Alpha", "Beta", "GA"}},
			{Type: deck.SlideTypeSummary, Heading: "Next Steps", Bullets: []string{"Ship it"}},
		},
	}
}

func TestOutlineValidate(t *testing.T) {
	gt.NoError(t, validOutline().Validate())

	t.Run("empty title", func(t *testing.T) {
		o := validOutline()
		o.Title = ""
		gt.Error(t, o.Validate())
	})

	t.Run("no slides", func(t *testing.T) {
		o := validOutline()
		o.Slides = nil
		gt.Error(t, o.Validate())
	})

	t.Run("unknown slide type", func(t *testing.T) {
		o := validOutline()
		o.Slides[1].Type = "chart"
		gt.Error(t, o.Validate())
	})

	t.Run("empty heading", func(t *testing.T) {
		o := validOutline()
		o.Slides[0].Heading = ""
		gt.Error(t, o.Validate())
	})

	t.Run("too many slides", func(t *testing.T) {
		o := validOutline()
		for len(o.Slides) <= 20 {
			o.Slides = append(o.Slides, deck.Slide{Type: deck.SlideTypeContent, Heading: "More"})
		}
		gt.Error(t, o.Validate())
	})

	t.Run("too many bullets", func(t *testing.T) {
		o := validOutline()
		o.Slides[1].Bullets = make([]string, 11)
		for i := range o.Slides[1].Bullets {
			o.Slides[1].Bullets[i] = "point"
		}
		gt.Error(t, o.Validate())
	})
}

func TestOutlineClone(t *testing.T) {
	o := validOutline()
	copied := o.Clone()

	copied.Title = "mutated"
	copied.Slides[1].Heading = "mutated"
	copied.Slides[1].Bullets[0] = "mutated"

	gt.V(t, o.Title).Equal("Launch Plan")
	gt.V(t, o.Slides[1].Heading).Equal("Timeline")
	gt.V(t, o.Slides[1].Bullets[0]).Equal("Alpha")

	var nilOutline *deck.Outline
	gt.V(t, nilOutline.Clone()).Nil()
}
