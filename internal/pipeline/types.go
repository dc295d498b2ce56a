package pipeline

// Word is a single transcribed word with its own timing.
type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is a contiguous unit of transcribed speech. Segments are read-only
// input; the pipeline never mutates them.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Cue is one subtitle display unit as it moves through the pipeline stages.
type Cue struct {
	Start float64
	End   float64
	Text  string
}

// Block is a cue with its text wrapped into display lines, ready to serialize.
type Block struct {
	Start float64
	End   float64
	Lines []string
}
