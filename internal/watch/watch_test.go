package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilsonani/reclaim/internal/trash"
)

func TestLogAppendAndCopy(t *testing.T) {
	log := &Log{}

	log.Append(Event{Source: "watcher", Message: "CREATE", Path: "/tmp/x"})
	log.Append(Event{Source: "sweeper", Message: "swept"})

	events := log.Events()
	require.Len(t, events, 2)
	assert.False(t, events[0].Time.IsZero(), "append stamps missing times")

	// Mutating the returned slice must not affect the log.
	events[0].Message = "tampered"
	assert.Equal(t, "CREATE", log.Events()[0].Message)
	assert.Equal(t, 2, log.Len())
}

func TestSweeperRemovesExpiredTrash(t *testing.T) {
	root := filepath.Join(t.TempDir(), "trash")
	tr, err := trash.Open(root)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "doomed.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	// Zero retention expires the item the moment it lands.
	_, err = tr.Move(path, 0, nil)
	require.NoError(t, err)

	log := &Log{}
	s := NewSweeper(tr, nil, time.Hour, log)
	s.sweep()

	assert.Equal(t, 0, tr.Items().TotalItems)
	require.Equal(t, 1, log.Len())
	assert.Equal(t, "sweeper", log.Events()[0].Source)
}

func TestSweeperNoopOnEmptyTrash(t *testing.T) {
	tr, err := trash.Open(filepath.Join(t.TempDir(), "trash"))
	require.NoError(t, err)

	log := &Log{}
	s := NewSweeper(tr, nil, time.Hour, log)
	s.sweep()

	assert.Equal(t, 0, log.Len(), "nothing removed, nothing logged")
}
