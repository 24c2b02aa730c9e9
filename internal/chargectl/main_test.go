package chargectl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBehaviourFile(t *testing.T, store *BatteryStore) string {
	raw, err := os.ReadFile(filepath.Join(store.dir, behaviourFile))
	require.NoError(t, err)
	return string(raw)
}

func TestTickWritesOnTransition(t *testing.T) {
	store := newTestStore(t, "81\n", "auto\n")
	require.NoError(t, tick(store))
	assert.Equal(t, "force-discharge", readBehaviourFile(t, store))

	// Discharge brought the capacity back to the ceiling, hold there.
	store = newTestStore(t, "80\n", "force-discharge\n")
	require.NoError(t, tick(store))
	assert.Equal(t, "inhibit-charge", readBehaviourFile(t, store))

	store = newTestStore(t, "69\n", "inhibit-charge\n")
	require.NoError(t, tick(store))
	assert.Equal(t, "auto", readBehaviourFile(t, store))
}

func TestTickLeavesUnchangedBehaviourAlone(t *testing.T) {
	store := newTestStore(t, "75\n", "inhibit-charge\n")
	require.NoError(t, tick(store))

	// The file keeps its trailing newline, so nothing was rewritten.
	assert.Equal(t, "inhibit-charge\n", readBehaviourFile(t, store))

	store = newTestStore(t, "75\n", "auto\n")
	require.NoError(t, tick(store))
	assert.Equal(t, "auto\n", readBehaviourFile(t, store))
}

func TestTickPropagatesReadErrors(t *testing.T) {
	store := newTestStore(t, "", "auto\n")
	assert.Error(t, tick(store))

	store = newTestStore(t, "81\n", "")
	assert.Error(t, tick(store))

	store = newTestStore(t, "eighty\n", "auto\n")
	assert.Error(t, tick(store))
}

func TestTickSequenceSettlesInBand(t *testing.T) {
	store := newTestStore(t, "85\n", "auto\n")

	require.NoError(t, tick(store))
	assert.Equal(t, "force-discharge", readBehaviourFile(t, store))

	// Capacity drops while discharging.
	for _, capacity := range []string{"83\n", "81\n"} {
		require.NoError(t, os.WriteFile(filepath.Join(store.dir, capacityFile), []byte(capacity), 0644))
		require.NoError(t, tick(store))
		assert.Equal(t, "force-discharge", readBehaviourFile(t, store))
	}

	require.NoError(t, os.WriteFile(filepath.Join(store.dir, capacityFile), []byte("79\n"), 0644))
	require.NoError(t, tick(store))
	assert.Equal(t, "inhibit-charge", readBehaviourFile(t, store))

	// Self discharge down to the low threshold keeps the hold in place.
	require.NoError(t, os.WriteFile(filepath.Join(store.dir, capacityFile), []byte("70\n"), 0644))
	require.NoError(t, tick(store))
	assert.Equal(t, "inhibit-charge", readBehaviourFile(t, store))

	require.NoError(t, os.WriteFile(filepath.Join(store.dir, capacityFile), []byte("69\n"), 0644))
	require.NoError(t, tick(store))
	assert.Equal(t, "auto", readBehaviourFile(t, store))
}

func TestProcArgsDefaults(t *testing.T) {
	args, err := procArgs([]string{})
	require.NoError(t, err)
	assert.Equal(t, defaultBatteryDir, args.Battery)
	assert.Equal(t, 60, args.PollInterval)
	assert.Equal(t, "info", args.LogLevel)
}

func TestProcArgsOverrides(t *testing.T) {
	args, err := procArgs([]string{"--battery", "/tmp/bat", "--poll-interval", "5", "--log-level", "debug"})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/bat", args.Battery)
	assert.Equal(t, 5, args.PollInterval)
	assert.Equal(t, "debug", args.LogLevel)
}
