package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetterLifecycleForwardOnly(t *testing.T) {
	letter := &CoverLetter{State: LetterCreated}

	require.NoError(t, letter.AdvanceState(LetterGenerated))
	require.NoError(t, letter.AdvanceState(LetterEdited))
	assert.NotNil(t, letter.EditedAt)

	// Never reverts to generated after an edit.
	assert.Error(t, letter.AdvanceState(LetterGenerated))
	assert.Equal(t, LetterEdited, letter.State)

	require.NoError(t, letter.AdvanceState(LetterExported))
	assert.Error(t, letter.AdvanceState(LetterEdited))
}

func TestLetterRepeatedEditRestampsTime(t *testing.T) {
	letter := &CoverLetter{State: LetterGenerated}
	require.NoError(t, letter.AdvanceState(LetterEdited))
	first := *letter.EditedAt

	require.NoError(t, letter.AdvanceState(LetterEdited))
	assert.False(t, letter.EditedAt.Before(first))
}

func TestLetterUnknownStateRejected(t *testing.T) {
	letter := &CoverLetter{State: LetterGenerated}
	assert.Error(t, letter.AdvanceState("published"))
}
