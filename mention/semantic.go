package mention

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// SemanticType is the coarse entity category of a chain.
type SemanticType string

const (
	Person  SemanticType = "PERSON"
	Place   SemanticType = "PLACE"
	Object  SemanticType = "OBJECT"
	Unknown SemanticType = "UNKNOWN_NER"
)

// Entity is one named entity detected by a Tagger.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Tagger detects named entities in a short text. Labels follow the
// OntoNotes tagset (PERSON, NORP, GPE, ORG, ...).
type Tagger interface {
	Entities(ctx context.Context, text string) ([]Entity, error)
}

// labelTypes maps tagger labels onto semantic types. Labels not listed
// here are OBJECT.
var labelTypes = map[string]SemanticType{
	"PERSON": Person,
	"NORP":   Person,

	"LOC": Place,
	"GPE": Place,
	"FAC": Place,

	"ORG":         Object,
	"PRODUCT":     Object,
	"EVENT":       Object,
	"WORK_OF_ART": Object,
	"LAW":         Object,
	"DATE":        Object,
	"TIME":        Object,
	"PERCENT":     Object,
	"MONEY":       Object,
	"QUANTITY":    Object,
	"ORDINAL":     Object,
	"CARDINAL":    Object,
}

// TypeForLabel maps a tagger label onto a semantic type.
func TypeForLabel(label string) SemanticType {
	if st, ok := labelTypes[strings.ToUpper(label)]; ok {
		return st
	}
	return Object
}

// Classifier assigns semantic types. A nil tagger means NER is unavailable.
type Classifier struct {
	tagger Tagger
	log    logrus.FieldLogger
}

func NewClassifier(tagger Tagger, log logrus.FieldLogger) *Classifier {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Classifier{tagger: tagger, log: log}
}

// ClassifyEntity returns the semantic type of an initial mention. Personal
// pronouns are PERSON except "it"/"its"; everything else goes through the
// tagger, whose first entity decides. Tagger failures yield Unknown.
func (c *Classifier) ClassifyEntity(ctx context.Context, text string) SemanticType {
	lower := strings.ToLower(strings.TrimSpace(text))
	if _, ok := personPronouns[lower]; ok {
		if lower == "it" || lower == "its" {
			return Object
		}
		return Person
	}

	if c.tagger == nil {
		return Unknown
	}
	ents, err := c.tagger.Entities(ctx, lower)
	if err != nil {
		c.log.WithError(err).WithField("text", lower).Warn("entity tagger unavailable")
		return Unknown
	}
	if len(ents) == 0 {
		return Object
	}
	return TypeForLabel(ents[0].Label)
}
