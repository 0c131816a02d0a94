package discourse

// Utterance is one (speaker, sentence) pair of a dialogue, already free of
// disfluency tokens.
type Utterance struct {
	Speaker  string `json:"speaker" yaml:"speaker"`
	Sentence string `json:"sentence" yaml:"sentence"`
}

// Turn locates one utterance inside the concatenated dialogue text.
// Start and End are a half-open range of code points.
type Turn struct {
	ID      int    `json:"turn_id"`
	Speaker string `json:"speaker"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Text    string `json:"text"`
}

// Indexed is the concatenated text of a dialogue plus its turn boundaries.
type Indexed struct {
	Text  string
	Turns []Turn
}
