package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCode_ZeroPads(t *testing.T) {
	code, err := formatCode(1)
	require.NoError(t, err)
	assert.Equal(t, "000001", code)

	code, err = formatCode(999999)
	require.NoError(t, err)
	assert.Equal(t, "999999", code)
}

func TestFormatCode_RejectsExhaustedSequence(t *testing.T) {
	_, err := formatCode(1000000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exhausted")

	_, err = formatCode(0)
	assert.Error(t, err)
}
