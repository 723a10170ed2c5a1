package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateShortIdentifier_FirstAttempt(t *testing.T) {
	hexRegex := regexp.MustCompile(`^[0-9a-f]{6}$`)

	var probes int
	alwaysFree := func(_ context.Context, _ string) (bool, error) {
		probes++
		return false, nil
	}

	shortID, err := AllocateShortIdentifier(context.Background(), alwaysFree, MaxAllocationAttempts)
	require.NoError(t, err)
	assert.Regexp(t, hexRegex, shortID)
	assert.Equal(t, 1, probes)
}

func TestAllocateShortIdentifier_Exhausted(t *testing.T) {
	var probes int
	alwaysTaken := func(_ context.Context, _ string) (bool, error) {
		probes++
		return true, nil
	}

	_, err := AllocateShortIdentifier(context.Background(), alwaysTaken, MaxAllocationAttempts)
	require.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, MaxAllocationAttempts, probes)
}

func TestAllocateShortIdentifier_OracleError(t *testing.T) {
	oracleErr := assert.AnError
	failing := func(_ context.Context, _ string) (bool, error) {
		return false, oracleErr
	}

	_, err := AllocateShortIdentifier(context.Background(), failing, MaxAllocationAttempts)
	require.ErrorIs(t, err, oracleErr)
}
