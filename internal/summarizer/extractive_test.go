package summarizer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsSummarizer/internal/domain"
)

func TestSummarizeKeepsOnlyQualifyingSentences(t *testing.T) {
	t.Parallel()

	long45 := strings.Repeat("b", 45)
	long60 := strings.Repeat("c", 60)
	content := "Hello. " + long45 + ". " + long60 + "! Tiny one?"

	got := Summarize(content)

	assert.Equal(t, long45+". "+long60+".", got)
}

func TestSummarizeShortScenario(t *testing.T) {
	t.Parallel()

	content := "A short one. This is a considerably longer second sentence for testing. Third."

	got := Summarize(content)

	// "A short one" is 11 characters and therefore qualifies.
	assert.Equal(t, "A short one. This is a considerably longer second sentence for testing.", got)
}

func TestSummarizeSelectsLongestThirtyPercentInOriginalOrder(t *testing.T) {
	t.Parallel()

	sentences := make([]string, 10)
	for i := range sentences {
		sentences[i] = fmt.Sprintf("Sentence number %d %s", i, strings.Repeat("x", 10+i))
	}
	// make three sentences in the middle clearly the longest
	sentences[2] += strings.Repeat(" long", 20)
	sentences[5] += strings.Repeat(" long", 30)
	sentences[7] += strings.Repeat(" long", 25)

	got := Summarize(strings.Join(sentences, ". ") + ".")

	want := sentences[2] + ". " + sentences[5] + ". " + sentences[7] + "."
	assert.Equal(t, want, got)
}

func TestSummarizeSingleCandidate(t *testing.T) {
	t.Parallel()

	got := Summarize("Only one sentence qualifies here. No. Nope.")

	assert.Equal(t, "Only one sentence qualifies here.", got)
}

func TestSummarizeEmptyInput(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   \n\t", "Hi. Yes. No!", "...!?"} {
		assert.Empty(t, Summarize(in), "input %q", in)
	}
}

func TestSummarizeTiesPreferEarlierSentences(t *testing.T) {
	t.Parallel()

	// seven equal-length candidates select max(2, floor(2.1)) = 2
	sentences := []string{
		"alpha sentence one",
		"bravo sentence two",
		"charl sentence thr",
		"delta sentence fou",
		"echoo sentence fiv",
		"foxtr sentence six",
		"golfs sentence sev",
	}
	content := strings.Join(sentences, ". ") + "."

	got := Summarize(content)

	assert.Equal(t, "alpha sentence one. bravo sentence two.", got)
}

func TestSummarizeIsDeterministic(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("Equal length text here! Another equal text!! ", 6) +
		"A noticeably longer sentence that should always be picked first."

	first := Summarize(content)
	for range 20 {
		require.Equal(t, first, Summarize(content))
	}
}

func TestSummarizeOutputIsOrderedSubset(t *testing.T) {
	t.Parallel()

	content := `Markets rallied on Tuesday after a week of losses. Analysts pointed to easing inflation data.
	Technology shares led the gains, with several large firms posting records! Energy stocks lagged?
	Bond yields fell slightly as investors priced in a pause. Some traders remain cautious about the outlook.
	The central bank meets again next month to review its policy stance.`

	got := Summarize(content)
	require.NotEmpty(t, got)
	require.True(t, strings.HasSuffix(got, "."))

	parts := strings.Split(strings.TrimSuffix(got, "."), ". ")
	require.GreaterOrEqual(t, len(parts), 2)

	last := -1
	for _, part := range parts {
		idx := strings.Index(content, part)
		require.GreaterOrEqual(t, idx, 0, "sentence %q not found in content", part)
		require.Greater(t, idx, last, "sentence %q out of order", part)
		last = idx
	}

	assert.LessOrEqual(t, domain.WordCount(got), domain.WordCount(content))
}

func TestSelectionCount(t *testing.T) {
	t.Parallel()

	cases := map[int]int{0: 0, 1: 1, 2: 2, 6: 2, 7: 2, 10: 3, 14: 4, 20: 6}
	for n, want := range cases {
		assert.Equal(t, want, selectionCount(n), "n=%d", n)
	}
}

func TestExtractiveImplementsSummarizer(t *testing.T) {
	t.Parallel()

	s := NewExtractive()
	got, err := s.Summarize(context.Background(), domain.Article{
		Content: "The first sentence is long enough. The second one is as well.",
	})
	require.NoError(t, err)
	assert.Equal(t, "The first sentence is long enough. The second one is as well.", got)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Summarize(ctx, domain.Article{Content: "whatever content"})
	assert.ErrorIs(t, err, context.Canceled)
}
