package charlm

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/trknhr/ghosttext/internal/logger"
)

// FallbackChar is emitted when no cumulative probability exceeds the draw.
const FallbackChar = ' '

var (
	ErrInvalidWindow  = errors.New("window length must be positive")
	ErrCorpusTooShort = errors.New("corpus shorter than window length")
)

// Source supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Model maps every window of windowLength characters to the distribution of
// the character that follows it.
//
// Train must complete before any call to Generate. After training the table
// is never written and draws from the random source are serialized, so
// Generate and Run may be called from several goroutines at once.
type Model struct {
	windowLength int
	table        map[string]*FrequencyList
	rnd          Source
}

type Option func(*Model)

// WithSeed makes sampling reproducible across runs.
func WithSeed(seed int64) Option {
	return func(m *Model) {
		m.rnd = rand.New(rand.NewSource(seed))
	}
}

func WithSource(src Source) Option {
	return func(m *Model) {
		m.rnd = src
	}
}

func New(windowLength int, opts ...Option) (*Model, error) {
	if windowLength < 1 {
		return nil, fmt.Errorf("new model with window %d: %w", windowLength, ErrInvalidWindow)
	}
	m := &Model{
		windowLength: windowLength,
		table:        make(map[string]*FrequencyList),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rnd == nil {
		m.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m.rnd = &lockedSource{src: m.rnd}
	return m, nil
}

// lockedSource guards a Source that is not safe for concurrent use,
// such as *rand.Rand.
type lockedSource struct {
	mu  sync.Mutex
	src Source
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Float64()
}

func (m *Model) WindowLength() int {
	return m.windowLength
}

// Train builds the window table from corpus and finalizes every list.
func (m *Model) Train(corpus string) error {
	chars := []rune(corpus)
	if len(chars) < m.windowLength {
		return fmt.Errorf("train on %d characters with window %d: %w", len(chars), m.windowLength, ErrCorpusTooShort)
	}

	for i := m.windowLength; i < len(chars); i++ {
		window := string(chars[i-m.windowLength : i])
		list, ok := m.table[window]
		if !ok {
			list = NewFrequencyList()
			m.table[window] = list
		}
		list.Update(chars[i])
	}

	for _, list := range m.table {
		list.FinalizeProbabilities()
	}

	logger.Debug("trained %d windows from %d characters", len(m.table), len(chars))
	return nil
}

// Lookup returns the list trained for window. Callers must not modify it.
func (m *Model) Lookup(window string) (*FrequencyList, bool) {
	list, ok := m.table[window]
	return list, ok
}

// Windows returns the trained window keys in sorted order.
func (m *Model) Windows() []string {
	keys := make([]string, 0, len(m.table))
	for k := range m.table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Model) String() string {
	var sb strings.Builder
	for _, k := range m.Windows() {
		sb.WriteString(k)
		sb.WriteString(" : ")
		sb.WriteString(m.table[k].String())
		sb.WriteString("\n")
	}
	return sb.String()
}
