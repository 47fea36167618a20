package common

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	s, err := MakeRandHexString(16)
	require.NoError(t, err)
	assert.Len(t, s, 32)

	s2, err := MakeRandHexString(16)
	require.NoError(t, err)
	assert.NotEqual(t, s, s2)
}

func TestTimestampedID(t *testing.T) {
	re := regexp.MustCompile(`^msg_\d+_[0-9a-f]+$`)

	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := TimestampedID("msg")
		assert.Regexp(t, re, id)
		_, dup := seen[id]
		assert.False(t, dup, "ids generated in the same millisecond must differ")
		seen[id] = struct{}{}
	}
}
