package charlm

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// NotFound is returned by IndexOf when no record holds the character.
const NotFound = -1

var ErrIndexOutOfRange = errors.New("index out of range")

// CharRecord holds the statistics of one character observed after a window.
// P and CP are only meaningful after FinalizeProbabilities.
type CharRecord struct {
	Char  rune
	Count int
	P     float64
	CP    float64
}

func (r CharRecord) String() string {
	return fmt.Sprintf("(%c %d %s %s)", r.Char, r.Count,
		strconv.FormatFloat(r.P, 'g', -1, 64),
		strconv.FormatFloat(r.CP, 'g', -1, 64))
}

// FrequencyList keeps one record per distinct character, newest character first.
// The order is significant: sampling walks the cumulative probabilities in it.
type FrequencyList struct {
	records []CharRecord
}

func NewFrequencyList() *FrequencyList {
	return &FrequencyList{}
}

func (l *FrequencyList) Len() int {
	return len(l.records)
}

// AddFirst prepends a fresh record for c with a count of one.
func (l *FrequencyList) AddFirst(c rune) {
	l.records = append(l.records, CharRecord{})
	copy(l.records[1:], l.records)
	l.records[0] = CharRecord{Char: c, Count: 1}
}

func (l *FrequencyList) First() (CharRecord, bool) {
	if len(l.records) == 0 {
		return CharRecord{}, false
	}
	return l.records[0], true
}

func (l *FrequencyList) IndexOf(c rune) int {
	for i := range l.records {
		if l.records[i].Char == c {
			return i
		}
	}
	return NotFound
}

// Update counts one more occurrence of c. Unseen characters go to the front.
func (l *FrequencyList) Update(c rune) {
	if i := l.IndexOf(c); i != NotFound {
		l.records[i].Count++
		return
	}
	l.AddFirst(c)
}

func (l *FrequencyList) Remove(c rune) bool {
	i := l.IndexOf(c)
	if i == NotFound {
		return false
	}
	l.records = append(l.records[:i], l.records[i+1:]...)
	return true
}

func (l *FrequencyList) Get(index int) (CharRecord, error) {
	if index < 0 || index >= len(l.records) {
		return CharRecord{}, fmt.Errorf("get %d of %d: %w", index, len(l.records), ErrIndexOutOfRange)
	}
	return l.records[index], nil
}

func (l *FrequencyList) ToArray() []CharRecord {
	out := make([]CharRecord, len(l.records))
	copy(out, l.records)
	return out
}

// All yields the records in list order.
func (l *FrequencyList) All() iter.Seq2[int, CharRecord] {
	return l.AllFrom(0)
}

// AllFrom yields the records in list order starting at index. A negative
// index starts at the front; an index past the end yields nothing.
func (l *FrequencyList) AllFrom(index int) iter.Seq2[int, CharRecord] {
	return func(yield func(int, CharRecord) bool) {
		for i := max(index, 0); i < len(l.records); i++ {
			if !yield(i, l.records[i]) {
				return
			}
		}
	}
}

// FinalizeProbabilities turns counts into probabilities and running
// cumulative probabilities, following the current list order.
func (l *FrequencyList) FinalizeProbabilities() {
	total := 0
	for _, r := range l.records {
		total += r.Count
	}
	if total == 0 {
		return
	}

	cp := 0.0
	for i := range l.records {
		r := &l.records[i]
		r.P = float64(r.Count) / float64(total)
		if i == 0 {
			cp = r.P
		} else {
			cp += r.P
		}
		r.CP = cp
	}
}

func (l *FrequencyList) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	for _, r := range l.records {
		sb.WriteString(" ")
		sb.WriteString(r.String())
	}
	sb.WriteString(")")
	return sb.String()
}
