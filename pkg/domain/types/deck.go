package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ArtifactID identifies a rendered presentation file
type ArtifactID string

// NewArtifactID generates a new artifact ID
func NewArtifactID() ArtifactID {
	return ArtifactID(uuid.New().String())
}

func (x ArtifactID) String() string {
	return string(x)
}

const EmptyArtifactID ArtifactID = ""

func (x ArtifactID) Validate() error {
	if x == EmptyArtifactID {
		return goerr.New("empty artifact ID")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "invalid artifact ID format", goerr.V("id", x))
	}
	return nil
}

// TemplateKey identifies a presentation template (e.g. "general", "project_init")
type TemplateKey string

func (x TemplateKey) String() string {
	return string(x)
}

const EmptyTemplateKey TemplateKey = ""
