package idx_test

import (
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatepass/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.NotEmpty(t, id.String())

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
	require.False(t, id.IsZero())
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "not-a-ulid", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z"} {
		_, err := idx.Parse(in)
		require.ErrorIs(t, err, idx.ErrInvalid, in)
	}
}

func TestOrdering(t *testing.T) {
	a := idx.NewAt(time.Unix(1, 0).UTC())
	b := idx.NewAt(time.Unix(2, 0).UTC())

	require.Equal(t, -1, idx.Compare(a, b))
	require.Equal(t, 1, idx.Compare(b, a))
	require.Equal(t, 0, idx.Compare(a, a))
}

func TestSameMillisecondIsMonotonic(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()

	prev := idx.NewAt(tm)
	for range 1000 {
		next := idx.NewAt(tm)
		require.Equal(t, 1, idx.Compare(next, prev))
		prev = next
	}
}

func TestTimeExtraction(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	id := idx.NewAt(tm)

	require.WithinDuration(t, tm, id.Time(), time.Millisecond)
	require.True(t, idx.Zero.Time().IsZero())
}

func TestMustParse(t *testing.T) {
	require.NotPanics(t, func() { idx.MustParse("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV") })
	require.Panics(t, func() { idx.MustParse("bogus") })
}

func TestNewCodeFormat(t *testing.T) {
	code := idx.NewCode("ard")
	require.Regexp(t, `^ARD_[0-9A-HJKMNP-TV-Z]{26}$`, code)

	id, err := idx.ParseCode("ARD", code)
	require.NoError(t, err)
	require.False(t, id.IsZero())

	require.Len(t, idx.NewCode(""), 26)
}

func TestParseCodeRejectsMisreads(t *testing.T) {
	code := idx.NewCode("ARD")

	tests := []struct {
		name   string
		prefix string
		input  string
	}{
		{"wrong prefix", "XYZ", code},
		{"truncated", "ARD", code[:len(code)-3]},
		{"empty", "ARD", ""},
		{"prefix only", "ARD", "ARD_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := idx.ParseCode(tt.prefix, tt.input)
			require.ErrorIs(t, err, idx.ErrInvalidCode)
		})
	}
}

func TestNewCodeConcurrentUniqueness(t *testing.T) {
	const workers, perWorker = 16, 500

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{}, workers*perWorker)
		wg   sync.WaitGroup
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for range perWorker {
				local = append(local, idx.NewCode("ARD"))
			}
			mu.Lock()
			defer mu.Unlock()
			for _, c := range local {
				seen[c] = struct{}{}
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*perWorker)
}
