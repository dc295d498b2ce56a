package pipeline

// ExtendDurations holds every cue on screen for up to extendBy extra seconds,
// never past the start of the following cue. The last cue is always extended
// by the full amount. The input slice is left untouched.
func ExtendDurations(cues []Cue, extendBy float64) []Cue {
	out := make([]Cue, len(cues))
	copy(out, cues)

	for i := range out {
		if i == len(out)-1 {
			out[i].End += extendBy
			break
		}
		next := out[i+1].Start
		gap := next - out[i].End
		switch {
		case gap <= 0:
		case gap <= extendBy:
			// End exactly on the next start.
			out[i].End = next
		default:
			out[i].End += extendBy
		}
	}
	return out
}
