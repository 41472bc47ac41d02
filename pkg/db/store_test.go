package db

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndGetRecent(t *testing.T) {
	s := newTestStore(t)

	err := s.AppendPhishy(PhishyTokenEntry{
		TokenAddress:     "0xaaa",
		TokenType:        "fourmeme",
		TokenSymbol:      "TST",
		PhishyCount:      3,
		TotalAddresses:   10,
		TotalTransferred: 1000,
		TotalBought:      400,
		TotalWithoutBuy:  600,
		RiskScore:        80,
	})
	require.NoError(t, err)

	entries, err := s.GetRecent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "0xaaa", e.TokenAddress)
	assert.Equal(t, "fourmeme", e.TokenType)
	assert.Equal(t, "TST", e.TokenSymbol)
	assert.Equal(t, 3, e.PhishyCount)
	assert.Equal(t, 10, e.TotalAddresses)
	assert.Equal(t, 600.0, e.TotalWithoutBuy)
	assert.Equal(t, 80, e.RiskScore)
	assert.False(t, e.DetectedAt.IsZero())
}

func TestGetRecent_MostRecentFirstAndBounded(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.AppendPhishy(PhishyTokenEntry{
			TokenAddress: fmt.Sprintf("token%d", i),
			TokenType:    "pumpfun",
			PhishyCount:  1,
		}))
	}

	entries, err := s.GetRecent(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "token4", entries[0].TokenAddress)
	assert.Equal(t, "token3", entries[1].TokenAddress)
	assert.Equal(t, "token2", entries[2].TokenAddress)
}

func TestGetRecent_EmptyLog(t *testing.T) {
	s := newTestStore(t)

	entries, err := s.GetRecent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPrune_KeepsNewestEntries(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 10; i++ {
		require.NoError(t, s.AppendPhishy(PhishyTokenEntry{
			TokenAddress: fmt.Sprintf("token%d", i),
			TokenType:    "pumpfun",
			PhishyCount:  1,
		}))
	}

	require.NoError(t, s.Prune(4))

	entries, err := s.GetRecent(100)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "token9", entries[0].TokenAddress)
	assert.Equal(t, "token6", entries[3].TokenAddress)
}
