package transition_test

import (
	"testing"

	"github.com/chrisskorka/sysconf/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestTransitioner_InitialCurrentIsOld(t *testing.T) {
	tr := transition.New([]string{"a", "b", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, tr.Current())
}

func TestTransitioner_OldOnlyRemovesFromRemaining(t *testing.T) {
	tr := transition.New([]string{"a", "b", "c"})
	require.NoError(t, tr.Update(ptr("b"), nil))
	assert.Equal(t, []string{"a", "c"}, tr.Current())
}

func TestTransitioner_NewOnlyAppendsFirst(t *testing.T) {
	tr := transition.New([]string{"a", "b"})
	require.NoError(t, tr.Update(nil, ptr("z")))
	assert.Equal(t, []string{"z", "a", "b"}, tr.Current())
}

func TestTransitioner_BothMovesNewValueToFront(t *testing.T) {
	tr := transition.New([]string{"a", "b", "c"})
	require.NoError(t, tr.Update(ptr("b"), ptr("B")))
	assert.Equal(t, []string{"B", "a", "c"}, tr.Current())
}

func TestTransitioner_NeitherIsRejected(t *testing.T) {
	tr := transition.New([]string{"a"})
	err := tr.Update(nil, nil)
	assert.Error(t, err)
}

func TestTransitioner_OldNotPresentFails(t *testing.T) {
	tr := transition.New([]string{"a"})
	err := tr.Update(ptr("missing"), nil)
	assert.Error(t, err)
}

func TestTransitioner_DuplicateNewFails(t *testing.T) {
	tr := transition.New([]string{"a"})
	require.NoError(t, tr.Update(nil, ptr("x")))
	err := tr.Update(nil, ptr("x"))
	assert.Error(t, err)
}

func TestTransitioner_FullSequenceIsPermutation(t *testing.T) {
	tr := transition.New([]string{"a", "b", "c"})
	require.NoError(t, tr.Update(ptr("a"), ptr("A")))
	require.NoError(t, tr.Update(nil, ptr("D")))
	require.NoError(t, tr.Update(ptr("b"), nil))

	got := tr.Current()
	assert.Equal(t, []string{"A", "D", "c"}, got)
}
