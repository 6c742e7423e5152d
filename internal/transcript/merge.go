package transcript

import "strings"

// MergeAdjacent folds each run of consecutive items for which same reports
// true into a single item built by join. Every item is compared against the
// last emitted accumulator, so a single left-to-right pass suffices. The
// input slice is not modified.
func MergeAdjacent[T any](items []T, same func(acc, next T) bool, join func(acc, next T) T) []T {
	if len(items) == 0 {
		return nil
	}

	merged := make([]T, 0, len(items))
	acc := items[0]
	for _, item := range items[1:] {
		if same(acc, item) {
			acc = join(acc, item)
			continue
		}
		merged = append(merged, acc)
		acc = item
	}
	return append(merged, acc)
}

// MergeSpeakerRuns joins consecutive fragments of the same speaker within a
// session, separating their texts with a single space. The first fragment's
// attribution is kept and the word count is recomputed from the joined text.
func MergeSpeakerRuns(frags []Fragment) []Fragment {
	return MergeAdjacent(frags, sameSpeaker, joinFragments)
}

func sameSpeaker(acc, next Fragment) bool {
	return acc.SessionID == next.SessionID && acc.Speaker == next.Speaker
}

func joinFragments(acc, next Fragment) Fragment {
	acc.Text = strings.TrimSpace(acc.Text + " " + next.Text)
	acc.WordCount = WordCount(acc.Text)
	return acc
}
