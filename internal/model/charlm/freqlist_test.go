package charlm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listOf(s string) *FrequencyList {
	l := NewFrequencyList()
	for _, c := range s {
		l.Update(c)
	}
	return l
}

func chars(l *FrequencyList) string {
	var out []rune
	for _, r := range l.All() {
		out = append(out, r.Char)
	}
	return string(out)
}

func TestFrequencyList_UpdateOrderAndCounts(t *testing.T) {
	l := listOf("committee_")

	assert.Equal(t, "_etimoc", chars(l))

	want := map[rune]int{'c': 1, 'o': 1, 'm': 2, 'i': 1, 't': 2, 'e': 2, '_': 1}
	for _, r := range l.ToArray() {
		assert.Equal(t, want[r.Char], r.Count, "count of %q", r.Char)
	}
	assert.Equal(t, len(want), l.Len())
}

func TestFrequencyList_IndexOf(t *testing.T) {
	l := listOf("abc")

	assert.Equal(t, 0, l.IndexOf('c'))
	assert.Equal(t, 2, l.IndexOf('a'))
	assert.Equal(t, NotFound, l.IndexOf('z'))
	assert.Equal(t, NotFound, NewFrequencyList().IndexOf('a'))
}

func TestFrequencyList_Remove(t *testing.T) {
	l := listOf("abcd")

	assert.True(t, l.Remove('c'))
	assert.Equal(t, "dba", chars(l))

	assert.True(t, l.Remove('d'))
	assert.Equal(t, "ba", chars(l))

	assert.True(t, l.Remove('a'))
	assert.Equal(t, "b", chars(l))

	assert.False(t, l.Remove('x'))
	assert.Equal(t, 1, l.Len())
}

func TestFrequencyList_Get(t *testing.T) {
	l := listOf("aab")

	rec, err := l.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 'b', rec.Char)

	rec, err = l.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 'a', rec.Char)
	assert.Equal(t, 2, rec.Count)

	for _, idx := range []int{-1, 2, 10} {
		_, err := l.Get(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)
	}
}

func TestFrequencyList_FirstAndAddFirst(t *testing.T) {
	l := NewFrequencyList()
	_, ok := l.First()
	assert.False(t, ok)

	l.AddFirst('i')
	l.AddFirst('n')
	l.AddFirst('u')
	l.AddFirst('R')

	first, ok := l.First()
	require.True(t, ok)
	assert.Equal(t, 'R', first.Char)
	assert.Equal(t, "Runi", chars(l))
}

func TestFrequencyList_ToArrayIsCopy(t *testing.T) {
	l := listOf("ab")
	arr := l.ToArray()
	arr[0].Count = 99

	rec, err := l.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Count)
}

func TestFrequencyList_AllStopsEarly(t *testing.T) {
	l := listOf("abc")
	seen := 0
	for range l.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestFrequencyList_AllFrom(t *testing.T) {
	l := listOf("abc")

	tests := []struct {
		name  string
		index int
		want  string
		idx   []int
	}{
		{name: "front", index: 0, want: "cba", idx: []int{0, 1, 2}},
		{name: "middle", index: 1, want: "ba", idx: []int{1, 2}},
		{name: "last", index: 2, want: "a", idx: []int{2}},
		{name: "past the end", index: 3, want: ""},
		{name: "negative", index: -4, want: "cba", idx: []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				got []rune
				idx []int
			)
			for i, r := range l.AllFrom(tt.index) {
				idx = append(idx, i)
				got = append(got, r.Char)
			}
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.idx, idx)
		})
	}
}

func TestFrequencyList_FinalizeProbabilities(t *testing.T) {
	l := listOf("aab")
	l.FinalizeProbabilities()

	arr := l.ToArray()
	require.Len(t, arr, 2)

	assert.Equal(t, 'b', arr[0].Char)
	assert.InDelta(t, 1.0/3, arr[0].P, 1e-12)
	assert.InDelta(t, 1.0/3, arr[0].CP, 1e-12)

	assert.Equal(t, 'a', arr[1].Char)
	assert.InDelta(t, 2.0/3, arr[1].P, 1e-12)
	assert.InDelta(t, 1.0, arr[1].CP, 1e-9)
}

func TestFrequencyList_FinalizeTwiceIsStable(t *testing.T) {
	l := listOf("hello world")
	l.FinalizeProbabilities()
	before := l.ToArray()
	l.FinalizeProbabilities()
	assert.Equal(t, before, l.ToArray())
}

func TestFrequencyList_FinalizeEmpty(t *testing.T) {
	l := NewFrequencyList()
	l.FinalizeProbabilities()
	assert.Equal(t, 0, l.Len())
}

func TestFrequencyList_CumulativeInvariant(t *testing.T) {
	l := listOf("the quick brown fox jumps over the lazy dog")
	l.FinalizeProbabilities()

	sum, prev := 0.0, 0.0
	for _, r := range l.All() {
		sum += r.P
		assert.GreaterOrEqual(t, r.CP, prev)
		prev = r.CP
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.True(t, math.Abs(prev-1.0) < 1e-9, "last cp = %v", prev)
}

func TestFrequencyList_String(t *testing.T) {
	assert.Equal(t, "()", NewFrequencyList().String())

	l := listOf("ab")
	l.FinalizeProbabilities()
	assert.Equal(t, "( (b 1 0.5 0.5) (a 1 0.5 1))", l.String())
}
