package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJob() *GenerationJob {
	return NewGenerationJob(
		Profile{Name: "Jane Doe", Email: "jane@x.com"},
		JobPosting{Company: "Acme", Title: "Backend Engineer"},
		GenerationConfig{},
	)
}

func TestNewGenerationJobDefaults(t *testing.T) {
	job := newTestJob()

	assert.Equal(t, StatusPending, job.Status)
	assert.Equal(t, "Acme", job.Company)
	assert.Equal(t, "Backend Engineer", job.Position)
	assert.Nil(t, job.StartedAt)
	assert.Nil(t, job.CompletedAt)
	assert.Nil(t, job.CoverLetterID)
	assert.False(t, job.CreatedAt.IsZero())
}

func TestTransitionStampsStartedAtOnce(t *testing.T) {
	job := newTestJob()

	require.NoError(t, job.Transition(StatusInProgress))
	require.NotNil(t, job.StartedAt)
	started := *job.StartedAt
	assert.Nil(t, job.CompletedAt)

	time.Sleep(time.Millisecond)
	require.NoError(t, job.Transition(StatusCompleted))
	assert.Equal(t, started, *job.StartedAt)
	require.NotNil(t, job.CompletedAt)
}

func TestTransitionCompletedAtOnlyOnTerminal(t *testing.T) {
	job := newTestJob()
	require.NoError(t, job.Transition(StatusInProgress))
	assert.Nil(t, job.CompletedAt)

	require.NoError(t, job.Transition(StatusFailed))
	assert.NotNil(t, job.CompletedAt)
}

func TestTransitionCancelOnlyWhilePending(t *testing.T) {
	job := newTestJob()
	require.NoError(t, job.Transition(StatusCancelled))
	assert.NotNil(t, job.CompletedAt)

	job = newTestJob()
	require.NoError(t, job.Transition(StatusInProgress))
	assert.Error(t, job.Transition(StatusCancelled))
}

func TestNoTransitionOutOfTerminalStates(t *testing.T) {
	for _, terminal := range []JobStatus{StatusCompleted, StatusFailed} {
		job := newTestJob()
		require.NoError(t, job.Transition(StatusInProgress))
		require.NoError(t, job.Transition(terminal))
		for _, to := range []JobStatus{StatusPending, StatusInProgress, StatusCompleted, StatusFailed, StatusCancelled} {
			assert.Error(t, job.Transition(to), "%s -> %s should be rejected", terminal, to)
		}
	}

	job := newTestJob()
	require.NoError(t, job.Transition(StatusCancelled))
	assert.Error(t, job.Transition(StatusInProgress))
}

func TestInvalidTransitionsRejected(t *testing.T) {
	job := newTestJob()
	assert.Error(t, job.Transition(StatusCompleted))
	assert.Error(t, job.Transition(StatusFailed))
	assert.Equal(t, StatusPending, job.Status)
}

func TestParseJobStatus(t *testing.T) {
	for _, s := range []string{"pending", "in_progress", "completed", "failed", "cancelled"} {
		got, err := ParseJobStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(got))
	}
	_, err := ParseJobStatus("unknown")
	assert.Error(t, err)
}

func TestSetProgressClamps(t *testing.T) {
	job := newTestJob()
	job.SetProgress(150, "Generating...")
	assert.Equal(t, 100, job.Progress)
	job.SetProgress(-5, "x")
	assert.Equal(t, 0, job.Progress)
}
