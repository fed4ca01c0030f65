package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceFind(t *testing.T) {
	srv := newSheetServer(t, sampleCSV)
	svc := NewService(newTestLoader(t, srv.URL, nil))
	ctx := context.Background()

	t.Run("match is case and whitespace insensitive", func(t *testing.T) {
		res, err := svc.Find(ctx, " A@B.COM ")
		require.NoError(t, err)
		assert.Equal(t, OutcomeMatched, res.Outcome)
		assert.True(t, res.Found())
		assert.Equal(t, "a@b.com", res.Identifier)
		assert.Equal(t, " A@B.COM ", res.Query)
		assert.Equal(t, FlagYes, res.Flag("chargeAL"))
		assert.Equal(t, FlagNo, res.Flag("nftCollabAL"))
	})

	t.Run("unknown identifier is not found", func(t *testing.T) {
		res, err := svc.Find(ctx, "z@z.com")
		require.NoError(t, err)
		assert.Equal(t, OutcomeNotFound, res.Outcome)
		assert.False(t, res.Found())
		assert.Nil(t, res.Entry)
		assert.Equal(t, FlagNo, res.Flag("chargeAL"))
	})

	assert.Equal(t, int64(1), srv.hits.Load())
}

func TestServiceFind_BlankQueryDoesNotLoad(t *testing.T) {
	stub := &stubFetcher{}
	l, err := NewLoader(stub, LoaderConfig{URL: "https://example.test/sheet.csv", Schema: testSchema()})
	require.NoError(t, err)
	svc := NewService(l)

	for _, q := range []string{"", "   ", "\t\n"} {
		res, err := svc.Find(context.Background(), q)
		assert.ErrorIs(t, err, ErrEmptyIdentifier)
		assert.Equal(t, OutcomeInvalid, res.Outcome)
		assert.Equal(t, FlagUnknown, res.Flag("chargeAL"))
	}

	assert.Equal(t, int64(0), stub.calls.Load())
	assert.Equal(t, LoadStateIdle, l.State())
}

func TestServiceFind_LoadError(t *testing.T) {
	stub := &stubFetcher{}
	l, err := NewLoader(stub, LoaderConfig{URL: "https://example.test/sheet.csv", Schema: testSchema()})
	require.NoError(t, err)
	svc := NewService(l)

	res, err := svc.Find(context.Background(), "a@b.com")
	require.ErrorIs(t, err, errStub)

	var lerr *LoadError
	assert.ErrorAs(t, err, &lerr)
	assert.Equal(t, OutcomeLoadError, res.Outcome)
	assert.Equal(t, FlagUnknown, res.Flag("chargeAL"))
	assert.Equal(t, int64(1), stub.calls.Load())

	// A later lookup retries the load.
	_, _ = svc.Find(context.Background(), "a@b.com")
	assert.Equal(t, int64(2), stub.calls.Load())
}

func TestServiceFind_FirstDuplicateWins(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantFlag map[string]FlagState
	}{
		{
			name:     "case variants",
			body:     "email,ChargeAL,NFTCollabAL\nA@B.com,1,0\na@b.com,0,1\n",
			wantFlag: map[string]FlagState{"chargeAL": FlagYes, "nftCollabAL": FlagNo},
		},
		{
			name:     "padded later duplicate",
			body:     "email,ChargeAL\na@b.com,1\nA@B.com ,0\n",
			wantFlag: map[string]FlagState{"chargeAL": FlagYes, "nftCollabAL": FlagNo},
		},
		{
			name:     "first row negative",
			body:     "email,ChargeAL\na@b.com,×\na@b.com,⭕\n",
			wantFlag: map[string]FlagState{"chargeAL": FlagNo},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newSheetServer(t, tt.body)
			svc := NewService(newTestLoader(t, srv.URL, nil))

			res, err := svc.Find(context.Background(), "a@b.com")
			require.NoError(t, err)
			assert.Equal(t, OutcomeMatched, res.Outcome)
			assert.Equal(t, 2, svc.Loader().Dataset().Len())
			for key, want := range tt.wantFlag {
				assert.Equal(t, want, res.Flag(key), key)
			}
		})
	}
}

func TestServiceFind_NotifiesObserver(t *testing.T) {
	srv := newSheetServer(t, sampleCSV)
	rec := &recordingObserver{}
	svc := NewService(newTestLoader(t, srv.URL, rec))

	ctx := ContextWithClientIP(context.Background(), "203.0.113.7")
	_, _ = svc.Find(ctx, "a@b.com")
	_, _ = svc.Find(ctx, "")

	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.lookups, 2)
	assert.Equal(t, OutcomeMatched, rec.lookups[0].Result.Outcome)
	assert.Equal(t, "203.0.113.7", rec.lookups[0].ClientIP)
	assert.Equal(t, OutcomeInvalid, rec.lookups[1].Result.Outcome)
	assert.ErrorIs(t, rec.lookups[1].Err, ErrEmptyIdentifier)
	assert.NotEqual(t, rec.lookups[0].Result.LookupID, rec.lookups[1].Result.LookupID)
}

func TestRefreshScheduler(t *testing.T) {
	srv := newSheetServer(t, sampleCSV)
	l := newTestLoader(t, srv.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.StartRefreshScheduler(ctx, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return srv.hits.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, LoadStateLoaded, l.State())
}

func TestRefreshScheduler_DisabledReturnsImmediately(t *testing.T) {
	srv := newSheetServer(t, sampleCSV)
	l := newTestLoader(t, srv.URL, nil)

	l.StartRefreshScheduler(context.Background(), 0)
	assert.Equal(t, int64(0), srv.hits.Load())
}
