package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/domain"
	"github.com/aussiebroadwan/gatepass/internal/gatepass/store/drivers/sqlite"
	"github.com/sourcegraph/conc/pool"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return NewRegistry(st, "ARD")
}

func TestRegistryDoorScenario(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)

	inv, err := reg.Issue(ctx, "Alice", "")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(inv.Code, "ARD_"))
	require.Equal(t, "Alice", inv.HolderName)
	require.Equal(t, domain.StateIssued, inv.State)

	first, err := reg.Validate(ctx, inv.Code, "door-1")
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeGranted, first.Outcome)
	require.Equal(t, "Alice", first.HolderName)
	require.NotNil(t, first.UsedAt)

	second, err := reg.Validate(ctx, inv.Code, "door-2")
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeAlreadyUsed, second.Outcome)
	require.Equal(t, "Alice", second.HolderName)

	bogus, err := reg.Validate(ctx, "bogus", "door-1")
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeUnknown, bogus.Outcome)
	require.Empty(t, bogus.HolderName)
	require.Nil(t, bogus.UsedAt)

	stats, err := reg.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, domain.Stats{IssuedCount: 1, UsedCount: 1}, stats)
}

func TestIssueRejectsBlankHolderName(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)

	for _, name := range []string{"", "   ", "\t\n", strings.Repeat("x", MaxHolderNameLength+1)} {
		_, err := reg.Issue(ctx, name, "")
		require.ErrorIs(t, err, ErrInvalidInput)
	}

	stats, err := reg.Stats(ctx)
	require.NoError(t, err)
	require.Zero(t, stats.IssuedCount, "rejected issuance must not create a record")
}

func TestIssueTrimsHolderName(t *testing.T) {
	reg := newTestRegistry(t)

	inv, err := reg.Issue(context.Background(), "  Bob Smith \n", "")
	require.NoError(t, err)
	require.Equal(t, "Bob Smith", inv.HolderName)
}

func TestIssueConcurrentCodesAreUnique(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)

	const n = 200
	p := pool.NewWithResults[string]().WithErrors().WithMaxGoroutines(16)
	for i := range n {
		p.Go(func() (string, error) {
			inv, err := reg.Issue(ctx, "Guest "+string(rune('A'+i%26)), "")
			return inv.Code, err
		})
	}

	codes, err := p.Wait()
	require.NoError(t, err)
	require.Len(t, codes, n)

	seen := make(map[string]struct{}, n)
	for _, c := range codes {
		require.NotContains(t, seen, c, "duplicate code issued")
		seen[c] = struct{}{}
	}

	stats, err := reg.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(n), stats.IssuedCount)
}

func TestValidateSingleGrantUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)

	inv, err := reg.Issue(ctx, "Alice", "")
	require.NoError(t, err)

	const callers = 32
	start := make(chan struct{})
	p := pool.NewWithResults[domain.ValidationResult]().WithErrors()
	for range callers {
		p.Go(func() (domain.ValidationResult, error) {
			<-start
			return reg.Validate(ctx, inv.Code, "door")
		})
	}
	close(start)

	results, err := p.Wait()
	require.NoError(t, err)
	require.Len(t, results, callers)

	var granted, used int
	for _, r := range results {
		switch r.Outcome {
		case domain.OutcomeGranted:
			granted++
		case domain.OutcomeAlreadyUsed:
			used++
		}
		require.Equal(t, "Alice", r.HolderName)
	}
	require.Equal(t, 1, granted, "exactly one caller must be granted entry")
	require.Equal(t, callers-1, used)
}

func TestValidateUnknownDoesNotMutateStats(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)

	_, err := reg.Issue(ctx, "Alice", "")
	require.NoError(t, err)

	before, err := reg.Stats(ctx)
	require.NoError(t, err)

	for _, code := range []string{"nonexistent", "", "   ", "ARD_01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "ard_not_a_code"} {
		res, err := reg.Validate(ctx, code, "door-1")
		require.NoError(t, err)
		require.Equal(t, domain.OutcomeUnknown, res.Outcome, "code %q", code)
	}

	after, err := reg.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestCountsMoveMonotonically(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)

	inv, err := reg.Issue(ctx, "Alice", "")
	require.NoError(t, err)

	s1, err := reg.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), s1.IssuedCount)
	require.Equal(t, int64(0), s1.UsedCount)

	_, err = reg.Issue(ctx, "Bob", "")
	require.NoError(t, err)

	s2, err := reg.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, s1.IssuedCount+1, s2.IssuedCount)

	res, err := reg.Validate(ctx, inv.Code, "")
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeGranted, res.Outcome)

	s3, err := reg.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, s2.IssuedCount, s3.IssuedCount, "granting does not change issued-ever count")
	require.Equal(t, s2.UsedCount+1, s3.UsedCount)
	require.Equal(t, int64(1), s3.Remaining())
}

func TestRepeatedRejectionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)

	inv, err := reg.Issue(ctx, "Alice", "")
	require.NoError(t, err)

	grant, err := reg.Validate(ctx, "  "+inv.Code+"\n", "door-1")
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeGranted, grant.Outcome)

	for range 5 {
		again, err := reg.Validate(ctx, inv.Code, "door-2")
		require.NoError(t, err)
		require.Equal(t, domain.OutcomeAlreadyUsed, again.Outcome)
		require.Equal(t, grant.HolderName, again.HolderName)
		require.NotNil(t, again.UsedAt)
		require.True(t, grant.UsedAt.Equal(*again.UsedAt), "used-at must stay the time of the first grant")
	}

	rec, err := reg.Lookup(ctx, inv.Code)
	require.NoError(t, err)
	require.Equal(t, "door-1", rec.UsedBy)
}

func TestValidateRecordsScanHistory(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)

	inv, err := reg.Issue(ctx, "Alice", "")
	require.NoError(t, err)

	_, err = reg.Validate(ctx, inv.Code, "door-1")
	require.NoError(t, err)
	_, err = reg.Validate(ctx, inv.Code, "door-2")
	require.NoError(t, err)

	events, err := reg.ScanHistory(ctx, inv.Code)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, domain.OutcomeGranted, events[0].Outcome)
	require.Equal(t, "door-1", events[0].Station)
	require.Equal(t, domain.OutcomeAlreadyUsed, events[1].Outcome)
	require.Equal(t, "door-2", events[1].Station)
}

func TestIssueBatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)

	_, err := reg.IssueBatch(ctx, []string{"Alice", " ", "Carol"}, "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = reg.IssueBatch(ctx, nil, "")
	require.ErrorIs(t, err, ErrInvalidInput)

	stats, err := reg.Stats(ctx)
	require.NoError(t, err)
	require.Zero(t, stats.IssuedCount)

	invs, err := reg.IssueBatch(ctx, []string{"Alice", "Bob", "Carol"}, "office")
	require.NoError(t, err)
	require.Len(t, invs, 3)
	require.Equal(t, "Bob", invs[1].HolderName)
	require.Equal(t, "office", invs[2].IssuedBy)

	stats, err = reg.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.IssuedCount)
}

func TestLookupAndList(t *testing.T) {
	ctx := context.Background()
	reg := newTestRegistry(t)

	base := time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)
	tick := 0
	reg.Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	alice, err := reg.Issue(ctx, "Alice", "")
	require.NoError(t, err)
	_, err = reg.Issue(ctx, "Bob", "")
	require.NoError(t, err)
	_, err = reg.Validate(ctx, alice.Code, "")
	require.NoError(t, err)

	got, err := reg.Lookup(ctx, alice.Code)
	require.NoError(t, err)
	require.Equal(t, domain.StateUsed, got.State)

	_, err = reg.Lookup(ctx, "ARD_MISSING")
	require.ErrorIs(t, err, ErrNotFound)

	issued, err := reg.List(ctx, domain.StateIssued, 0)
	require.NoError(t, err)
	require.Len(t, issued, 1)
	require.Equal(t, "Bob", issued[0].HolderName)

	all, err := reg.List(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = reg.List(ctx, domain.State("revoked"), 10)
	require.ErrorIs(t, err, ErrInvalidInput)
}
