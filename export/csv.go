package export

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"

	"github.com/maastricht-university/coref-chains/chain"
)

var (
	mentionHeader    = []string{"conv_id", "chain_id", "turn_id", "speaker", "text", "reference_type", "salience_score"}
	transitionHeader = []string{"conv_id", "chain_id", "cluster_id", "turn_start", "turn_end", "start_type", "end_type", "speaker_chain", "is_cross_speaker"}
)

type csvFile struct {
	f *os.File
	w *csv.Writer
}

func createCSV(path string, header []string) (*csvFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	return &csvFile{f: f, w: w}, nil
}

func (c *csvFile) close() error {
	c.w.Flush()
	return errors.Join(c.w.Error(), c.f.Close())
}

// CSVSink writes mention rows, and optionally transition rows, as CSV.
type CSVSink struct {
	mentions    *csvFile
	transitions *csvFile
}

// NewCSVSink creates the mention file and, when transitionsPath is not
// empty, the transition file. Headers are written immediately.
func NewCSVSink(mentionsPath, transitionsPath string) (*CSVSink, error) {
	m, err := createCSV(mentionsPath, mentionHeader)
	if err != nil {
		return nil, err
	}
	s := &CSVSink{mentions: m}
	if transitionsPath != "" {
		if s.transitions, err = createCSV(transitionsPath, transitionHeader); err != nil {
			m.close()
			return nil, err
		}
	}
	return s, nil
}

func (s *CSVSink) WriteChains(convID int, chains []*chain.Chain) error {
	for _, r := range MentionRows(convID, chains) {
		rec := []string{
			strconv.Itoa(r.ConvID),
			strconv.Itoa(r.ChainID),
			strconv.Itoa(r.TurnID),
			r.Speaker,
			r.Text,
			string(r.Form),
			strconv.Itoa(r.Salience),
		}
		if err := s.mentions.w.Write(rec); err != nil {
			return err
		}
	}
	if s.transitions == nil {
		return nil
	}
	for _, r := range TransitionRows(convID, chains) {
		rec := []string{
			strconv.Itoa(r.ConvID),
			strconv.Itoa(r.ChainID),
			strconv.Itoa(r.ClusterID),
			strconv.Itoa(r.TurnStart),
			strconv.Itoa(r.TurnEnd),
			string(r.StartForm),
			string(r.EndForm),
			r.SpeakerChain,
			strconv.FormatBool(r.IsCrossSpeaker),
		}
		if err := s.transitions.w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *CSVSink) Close() error {
	err := s.mentions.close()
	if s.transitions != nil {
		err = errors.Join(err, s.transitions.close())
	}
	return err
}
