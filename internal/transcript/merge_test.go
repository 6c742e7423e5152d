package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frag(session, speaker, text string) Fragment {
	return Fragment{SessionID: session, Metadata: Metadata{Speaker: speaker}, Text: text, WordCount: WordCount(text)}
}

func TestMergeSpeakerRuns(t *testing.T) {
	merged := MergeSpeakerRuns([]Fragment{
		frag("1", "Anna Muster", "Teil eins."),
		frag("1", "Anna Muster", "Teil zwei."),
	})
	require.Len(t, merged, 1)
	assert.Equal(t, "Teil eins. Teil zwei.", merged[0].Text)
	assert.Equal(t, 4, merged[0].WordCount)
}

func TestMergeSpeakerRunsKeepsSessionsApart(t *testing.T) {
	merged := MergeSpeakerRuns([]Fragment{
		frag("1", "Anna Muster", "Teil eins."),
		frag("2", "Anna Muster", "Teil zwei."),
		frag("2", "Max Mustermann", "Teil drei."),
		frag("2", "Anna Muster", "Teil vier."),
	})
	assert.Len(t, merged, 4)
}

func TestMergeSpeakerRunsIsIdempotent(t *testing.T) {
	in := []Fragment{
		frag("1", "Anna Muster", "a"),
		frag("1", "Anna Muster", "b"),
		frag("1", "Max Mustermann", "c"),
		frag("1", "Max Mustermann", "d"),
		frag("1", "Anna Muster", "e"),
	}
	once := MergeSpeakerRuns(in)
	assert.Equal(t, once, MergeSpeakerRuns(once))
	for i := 1; i < len(once); i++ {
		assert.False(t, once[i-1].SessionID == once[i].SessionID && once[i-1].Speaker == once[i].Speaker)
	}
	assert.Equal(t, "b", in[1].Text, "input must not be modified")
}

func TestMergeAdjacentEmpty(t *testing.T) {
	assert.Nil(t, MergeAdjacent[int](nil, func(a, b int) bool { return true }, func(a, b int) int { return a + b }))
}

func TestMergeAdjacentGeneric(t *testing.T) {
	got := MergeAdjacent([]string{"a", "a", "b", "b", "b", "a"},
		func(acc, next string) bool { return acc[0] == next[0] },
		func(acc, next string) string { return acc + next })
	assert.Equal(t, []string{"aa", "bbb", "a"}, got)
}

func TestStripParentheticals(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Text (Beifall) weiter.", "Text  weiter."},
		{"(Zuruf) Text", " Text"},
		{"Text ((doppelt)) weiter", "Text ) weiter"},
		{"Ohne Klammern", "Ohne Klammern"},
		{"Offen (ohne Ende", "Offen (ohne Ende"},
	}
	for _, tt := range tests {
		got := StripParentheticals(tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, got, StripParentheticals(got), "stripping twice must equal stripping once")
	}
}

func TestFilterShort(t *testing.T) {
	frags := []Fragment{
		frag("1", "A", "eins zwei drei"),
		frag("1", "B", "eins zwei drei vier"),
		{SessionID: "1", Metadata: Metadata{Speaker: "C"}, Text: "eins zwei drei vier fünf", WordCount: 0},
	}
	kept := FilterShort(frags, 3)
	require.Len(t, kept, 2)
	assert.Equal(t, "B", kept[0].Speaker)
	assert.Equal(t, 5, kept[1].WordCount)
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   \n\t"))
	assert.Equal(t, 4, WordCount(" Teil  eins.\nTeil zwei. "))
}
