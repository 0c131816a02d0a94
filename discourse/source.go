package discourse

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
)

// ErrDialogueNotFound is returned by a Source for an identifier outside its range.
var ErrDialogueNotFound = errors.New("dialogue not found")

// Source yields the ordered utterances of one dialogue.
type Source interface {
	Dialogue(ctx context.Context, id int) ([]Utterance, error)
}

type fallbackSource struct {
	src       Source
	defaultID int
	log       logrus.FieldLogger
}

// WithFallback serves the default dialogue whenever src reports
// ErrDialogueNotFound, logging a warning instead of failing.
func WithFallback(src Source, defaultID int, log logrus.FieldLogger) Source {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &fallbackSource{src: src, defaultID: defaultID, log: log}
}

func (f *fallbackSource) Dialogue(ctx context.Context, id int) ([]Utterance, error) {
	utts, err := f.src.Dialogue(ctx, id)
	if err == nil || !errors.Is(err, ErrDialogueNotFound) || id == f.defaultID {
		return utts, err
	}
	f.log.WithField("conv_id", id).Warnf("dialogue #%d inaccessible: defaulting to #%d", id, f.defaultID)
	return f.src.Dialogue(ctx, f.defaultID)
}
