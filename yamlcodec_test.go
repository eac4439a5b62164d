package sysconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLv4CodecRoundTrips(t *testing.T) {
	c := YAMLv4Codec{}
	v, err := c.Decode([]byte("version: \"1\"\nentries: [a, b]\n"))
	require.NoError(t, err)

	out, err := c.Encode(v)
	require.NoError(t, err)
	assert.Contains(t, string(out), "version:")
	assert.Contains(t, string(out), "entries:")
}
