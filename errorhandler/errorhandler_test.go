package errorhandler_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/chrisskorka/sysconf/errorhandler"
	"github.com/chrisskorka/sysconf/sysconferrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptingErrorHandler_SuccessNeedsNoPrompt(t *testing.T) {
	h := errorhandler.NewPromptingErrorHandler(&bytes.Buffer{}, strings.NewReader(""))
	outcome, err := h.TryRun(func() error { return nil })
	require.NoError(t, err)
	assert.Equal(t, errorhandler.Success, outcome)
}

func TestPromptingErrorHandler_NonWhitelistedErrorPropagates(t *testing.T) {
	h := errorhandler.NewPromptingErrorHandler(&bytes.Buffer{}, strings.NewReader(""))
	boom := errors.New("boom")
	_, err := h.TryRun(func() error { return boom })
	assert.Equal(t, boom, err)
}

func TestPromptingErrorHandler_Skip(t *testing.T) {
	h := errorhandler.NewPromptingErrorHandler(&bytes.Buffer{}, strings.NewReader("skip\n"))
	outcome, err := h.TryRun(func() error { return &sysconferrors.CommandFailure{ExitCode: 1} })
	require.NoError(t, err)
	assert.Equal(t, errorhandler.Skipped, outcome)
}

func TestPromptingErrorHandler_Abort(t *testing.T) {
	h := errorhandler.NewPromptingErrorHandler(&bytes.Buffer{}, strings.NewReader("abort\n"))
	outcome, err := h.TryRun(func() error { return &sysconferrors.CommandFailure{ExitCode: 1} })
	require.NoError(t, err)
	assert.Equal(t, errorhandler.Failed, outcome)
}

func TestPromptingErrorHandler_MarkAsSuccessful(t *testing.T) {
	h := errorhandler.NewPromptingErrorHandler(&bytes.Buffer{}, strings.NewReader("m\n"))
	outcome, err := h.TryRun(func() error { return &sysconferrors.CommandFailure{ExitCode: 1} })
	require.NoError(t, err)
	assert.Equal(t, errorhandler.Success, outcome)
}

func TestPromptingErrorHandler_RetryThenSkip(t *testing.T) {
	h := errorhandler.NewPromptingErrorHandler(&bytes.Buffer{}, strings.NewReader("retry\nskip\n"))
	calls := 0
	outcome, err := h.TryRun(func() error {
		calls++
		return &sysconferrors.CommandFailure{ExitCode: 1}
	})
	require.NoError(t, err)
	assert.Equal(t, errorhandler.Skipped, outcome)
	assert.Equal(t, 2, calls)
}

func TestPromptingErrorHandler_UnrecognizedInputReprompts(t *testing.T) {
	h := errorhandler.NewPromptingErrorHandler(&bytes.Buffer{}, strings.NewReader("huh\nabort\n"))
	outcome, err := h.TryRun(func() error { return &sysconferrors.CommandFailure{ExitCode: 1} })
	require.NoError(t, err)
	assert.Equal(t, errorhandler.Failed, outcome)
}

func TestPromptingErrorHandler_ExhaustsAttemptsAsFailed(t *testing.T) {
	h := errorhandler.NewPromptingErrorHandler(&bytes.Buffer{}, strings.NewReader(strings.Repeat("retry\n", 10)))
	calls := 0
	outcome, err := h.TryRun(func() error {
		calls++
		return &sysconferrors.CommandFailure{ExitCode: 1}
	})
	require.NoError(t, err)
	assert.Equal(t, errorhandler.Failed, outcome)
	assert.Equal(t, 5, calls)
}

func TestNonInteractiveErrorHandler_AbortsOnCommandFailure(t *testing.T) {
	var h errorhandler.NonInteractiveErrorHandler
	outcome, err := h.TryRun(func() error { return &sysconferrors.CommandFailure{ExitCode: 1} })
	require.NoError(t, err)
	assert.Equal(t, errorhandler.Failed, outcome)
}

func TestNonInteractiveErrorHandler_PropagatesOtherErrors(t *testing.T) {
	var h errorhandler.NonInteractiveErrorHandler
	boom := errors.New("boom")
	_, err := h.TryRun(func() error { return boom })
	assert.Equal(t, boom, err)
}

func TestNonInteractiveErrorHandler_Success(t *testing.T) {
	var h errorhandler.NonInteractiveErrorHandler
	outcome, err := h.TryRun(func() error { return nil })
	require.NoError(t, err)
	assert.Equal(t, errorhandler.Success, outcome)
}
