package schedule_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	schedule "github.com/Mythcell/ab-schedule"
)

func TestSecretSantaIsADerangement(t *testing.T) {
	t.Parallel()

	authors := eightAuthors()

	for seed := int64(0); seed < 5; seed++ {
		seed := seed
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			t.Parallel()

			pairs, err := schedule.SecretSanta(authors, schedule.WithSeed(seed))
			require.NoError(t, err)
			require.Len(t, pairs, len(authors))

			givers := map[schedule.Author]bool{}
			recipients := map[schedule.Author]bool{}

			for _, p := range pairs {
				require.NotEqual(t, p.Writer, p.Editor, "fixed point in derangement")
				require.False(t, givers[p.Writer], "%s gives twice", p.Writer)
				require.False(t, recipients[p.Editor], "%s receives twice", p.Editor)
				givers[p.Writer] = true
				recipients[p.Editor] = true
			}

			// Bijection over the whole pool in both roles.
			for _, a := range authors {
				require.True(t, givers[a], "%s never gives", a)
				require.True(t, recipients[a], "%s never receives", a)
			}
		})
	}
}

func TestSecretSantaTwoAuthorsSwap(t *testing.T) {
	t.Parallel()

	pairs, err := schedule.SecretSanta([]schedule.Author{"AB", "CD"}, schedule.WithSeed(1))
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	// The only derangement of two elements is the swap.
	for _, p := range pairs {
		require.NotEqual(t, p.Writer, p.Editor)
	}
}

func TestSecretSantaRejectsTinyPools(t *testing.T) {
	t.Parallel()

	_, err := schedule.SecretSanta(nil)
	require.ErrorIs(t, err, schedule.ErrInvalidParams)

	_, err = schedule.SecretSanta([]schedule.Author{"AB"})
	require.ErrorIs(t, err, schedule.ErrInvalidParams)
}

func TestSecretSantaHonorsBudgets(t *testing.T) {
	t.Parallel()

	// A one-iteration budget cannot place eight pairs.
	_, err := schedule.SecretSantaParams(eightAuthors(), 1, 1, schedule.WithSeed(1))
	require.ErrorIs(t, err, schedule.ErrExhausted)
}
