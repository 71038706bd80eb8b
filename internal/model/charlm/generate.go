package charlm

// StopReason tells why a generation loop ended. Every reason is terminal.
type StopReason int

const (
	StopLengthReached StopReason = iota
	StopUnknownWindow
	StopSeedTooShort
)

func (s StopReason) String() string {
	switch s {
	case StopLengthReached:
		return "length_reached"
	case StopUnknownWindow:
		return "unknown_window"
	case StopSeedTooShort:
		return "seed_too_short"
	default:
		return "unknown"
	}
}

type Generation struct {
	Text string
	Stop StopReason
}

// SampleCharacter draws one character from list by inverse-CDF lookup over
// its cumulative probabilities.
func (m *Model) SampleCharacter(list *FrequencyList) rune {
	r := m.rnd.Float64()
	for _, rec := range list.All() {
		if rec.CP > r {
			return rec.Char
		}
	}
	return FallbackChar
}

// Generate extends seed by up to n sampled characters.
func (m *Model) Generate(seed string, n int) string {
	return m.Run(seed, n).Text
}

// Run is Generate that also reports how the loop stopped. The text is cut
// short when the trailing window was never seen during training.
func (m *Model) Run(seed string, n int) Generation {
	window := []rune(seed)
	if len(window) < m.windowLength {
		return Generation{Text: seed, Stop: StopSeedTooShort}
	}
	window = window[len(window)-m.windowLength:]

	// The seed is returned byte for byte; only the sampled characters are
	// appended to it.
	var generated []rune
	for len(generated) < n {
		list, ok := m.table[string(window)]
		if !ok {
			return Generation{Text: seed + string(generated), Stop: StopUnknownWindow}
		}
		c := m.SampleCharacter(list)
		generated = append(generated, c)
		window = append(window[1:], c)
	}
	return Generation{Text: seed + string(generated), Stop: StopLengthReached}
}
