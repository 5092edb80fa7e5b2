package browser

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/trendkit/pkg/errors"
	"github.com/agentstation/trendkit/pkg/logging"
)

type fakeOpener struct {
	events []string
	fail   string
}

func (f *fakeOpener) Open(_ context.Context, link string) error {
	if link == f.fail {
		return errors.New("cannot open " + link)
	}
	f.events = append(f.events, "open "+link)
	return nil
}

func (f *fakeOpener) CloseBatch() error {
	f.events = append(f.events, "close")
	return nil
}

func TestReadLinks(t *testing.T) {
	csv := "country_iso_two,topic,keywords[list],query url\n" +
		"BD,email,gmail,https://a\n" +
		"BD,email,x,  \n" +
		"BD,email,y, https://b \n" +
		"BD,email\n"

	links, err := ReadLinks(strings.NewReader(csv), "q.csv", "query url")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a", "https://b"}, links)

	_, err = ReadLinks(strings.NewReader(csv), "q.csv", "url")
	var pe *errors.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Message, "url")
}

func TestBatch(t *testing.T) {
	links := []string{"1", "2", "3", "4", "5"}
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}, {"5"}}, Batch(links, 2))
	assert.Equal(t, [][]string{{"1", "2", "3", "4", "5"}}, Batch(links, 10))
	assert.Len(t, Batch(links, 0), 5)
	assert.Nil(t, Batch(nil, 3))
}

func TestRunnerRun(t *testing.T) {
	opener := &fakeOpener{}
	var prompts []string
	confirm := func(_ context.Context, prompt string) error {
		prompts = append(prompts, prompt)
		opener.events = append(opener.events, "confirm")
		return nil
	}

	r := NewRunner(opener, confirm,
		WithBatchSize(2),
		WithDelay(5*time.Second, 3*time.Second),
		WithRunnerLogger(logging.NewNopLogger()),
	)
	var pauses []time.Duration
	r.sleep = func(_ context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		return nil
	}

	opened, err := r.Run(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 3, opened)
	assert.Equal(t, []string{
		"open a", "open b", "confirm", "close",
		"open c", "confirm", "close",
	}, opener.events)
	assert.Len(t, prompts, 2)
	assert.Contains(t, prompts[0], "Batch 1/2")

	require.Len(t, pauses, 3)
	for _, p := range pauses {
		assert.GreaterOrEqual(t, p, 5*time.Second)
		assert.Less(t, p, 8*time.Second)
	}
}

func TestRunnerStopsOnOpenError(t *testing.T) {
	opener := &fakeOpener{fail: "b"}
	r := NewRunner(opener, func(context.Context, string) error { return nil },
		WithDelay(0, 0), WithRunnerLogger(logging.NewNopLogger()))

	opened, err := r.Run(context.Background(), []string{"a", "b", "c"})
	require.Error(t, err)
	assert.Equal(t, 1, opened)
}

func TestLineConfirm(t *testing.T) {
	var out strings.Builder
	confirm := LineConfirm(strings.NewReader("\n\n"), &out)

	require.NoError(t, confirm(context.Background(), "go? "))
	assert.Equal(t, "go? ", out.String())

	pr, pw := io.Pipe()
	defer pw.Close() //nolint:errcheck
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := LineConfirm(pr, io.Discard)(ctx, "")
	assert.True(t, errors.IsCanceled(err))
}

func TestSleepContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sleepContext(ctx, time.Hour)
	assert.True(t, errors.IsCanceled(err))
}
