package block_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duanblockchain/marketview/internal/block"
	"github.com/duanblockchain/marketview/internal/logger"
	"github.com/duanblockchain/marketview/internal/mocks"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testBlockProviderMocks struct {
	ctrl     *gomock.Controller
	fetcher  *mocks.MockBlockFetcher
	clock    *mocks.MockClock
	provider block.BlockProvider
}

func setupTest(t *testing.T) *testBlockProviderMocks {
	ctrl := gomock.NewController(t)

	mockFetcher := mocks.NewMockBlockFetcher(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	provider := block.NewBlockProvider(mockFetcher, block.Config{
		TTL:         10 * time.Second,
		StaleWindow: 2 * time.Minute,
	}, mockClock)

	return &testBlockProviderMocks{
		ctrl:     ctrl,
		fetcher:  mockFetcher,
		clock:    mockClock,
		provider: provider,
	}
}

func tearDownTest(tm *testBlockProviderMocks) {
	tm.ctrl.Finish()
}

func TestBlockProvider_GetLatestBlock_UsesCache_WithinTTL(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)

	first, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), first)

	tm.clock.EXPECT().Now().Return(now.Add(5 * time.Second))

	second, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), second)
}

func TestBlockProvider_GetLatestBlock_RefreshesCache_AfterTTL(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)
	_, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)

	tm.clock.EXPECT().Now().Return(now.Add(15 * time.Second))
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1100), nil)

	number, err := tm.provider.GetLatestBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1100), number)
}

func TestBlockProvider_GetLatestBlock_StaleFallback(t *testing.T) {
	tests := []struct {
		name        string
		elapsed     time.Duration
		expectError bool
	}{
		{name: "within stale window", elapsed: 30 * time.Second},
		{name: "beyond stale window", elapsed: 3 * time.Minute, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTest(t)
			defer tearDownTest(tm)

			ctx := context.Background()
			now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

			tm.clock.EXPECT().Now().Return(now)
			tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)
			_, err := tm.provider.GetLatestBlock(ctx)
			require.NoError(t, err)

			tm.clock.EXPECT().Now().Return(now.Add(tt.elapsed))
			tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), errors.New("network error"))

			number, err := tm.provider.GetLatestBlock(ctx)
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "no valid cache available")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint64(1000), number)
		})
	}
}

func TestBlockProvider_GetLatestBlock_NoCache_FetchFails(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	tm.clock.EXPECT().Now().Return(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), errors.New("network error"))

	number, err := tm.provider.GetLatestBlock(ctx)
	assert.Error(t, err)
	assert.Zero(t, number)
}

func TestBlockProvider_GetBlockTimestamp_FetchesOncePerBlock(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	ts := time.Unix(1_700_000_000, 0)

	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(42)).Return(ts, nil).Times(1)

	for range 3 {
		got, err := tm.provider.GetBlockTimestamp(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, ts, got)
	}
}

func TestBlockProvider_GetBlockTimestamp_ExpiresAfterTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockBlockFetcher(ctrl)
	provider := block.NewBlockProvider(fetcher, block.Config{
		TTL:          10 * time.Second,
		TimestampTTL: 20 * time.Millisecond,
	}, mocks.NewMockClock(ctrl))

	ctx := context.Background()
	ts := time.Unix(1_700_000_000, 0)
	fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(42)).Return(ts, nil).Times(2)

	_, err := provider.GetBlockTimestamp(ctx, 42)
	require.NoError(t, err)
	_, err = provider.GetBlockTimestamp(ctx, 42)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	got, err := provider.GetBlockTimestamp(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, ts, got)
}

func TestBlockProvider_GetBlockTimestamp_ErrorNotCached(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	ts := time.Unix(1_700_000_000, 0)

	gomock.InOrder(
		tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(7)).Return(time.Time{}, errors.New("boom")),
		tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(7)).Return(ts, nil),
	)

	_, err := tm.provider.GetBlockTimestamp(ctx, 7)
	assert.Error(t, err)

	got, err := tm.provider.GetBlockTimestamp(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, ts, got)
}

func TestBlockProvider_TrailingWindow(t *testing.T) {
	tests := []struct {
		name     string
		head     uint64
		size     uint64
		expected block.Range
	}{
		{name: "long chain", head: 10_000, size: 500, expected: block.Range{From: 9_500, To: 10_000}},
		{name: "short chain clamps at genesis", head: 120, size: 500, expected: block.Range{From: 0, To: 120}},
		{name: "head equals size", head: 500, size: 500, expected: block.Range{From: 0, To: 500}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTest(t)
			defer tearDownTest(tm)

			ctx := context.Background()
			tm.clock.EXPECT().Now().Return(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
			tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(tt.head, nil)

			r, err := tm.provider.TrailingWindow(ctx, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r)
		})
	}
}
