package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreHasAndKeyString(t *testing.T) {
	s := New(nil)

	assert.True(t, s.Has("ConnectionTimeOut"))
	assert.False(t, s.Has("NotARealKey"))
	assert.Equal(t, "ConnectionTimeOut", s.KeyString(KeyConnectionTimeOut))
	assert.Equal(t, "", s.KeyString(Key(-1)), "an out-of-range Key renders as empty, not a panic")
}

func TestStoreDataTypeAndSizePerKey(t *testing.T) {
	s := New(nil)

	dt, err := s.DataType("HeartbeatInterval")
	require.NoError(t, err)
	assert.Equal(t, TypeInt, dt)

	dt, err = s.DataType("AuthorizeRemoteTxRequests")
	require.NoError(t, err)
	assert.Equal(t, TypeBool, dt)

	dt, err = s.DataType("CpoName")
	require.NoError(t, err)
	assert.Equal(t, TypeStr, dt)

	size, err := s.Size("AuthorizationKey")
	require.NoError(t, err)
	assert.Greater(t, size, 0)

	_, err = s.DataType("NotARealKey")
	assert.ErrorIs(t, err, ErrUnknownKey)
	_, err = s.Size("NotARealKey")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestStoreWritableAndReadableFlags(t *testing.T) {
	s := New(nil)

	assert.True(t, s.IsWritable("HeartbeatInterval"))
	assert.False(t, s.IsWritable("NumberOfConnectors"), "NumberOfConnectors is read-only")
	assert.True(t, s.IsReadable("NumberOfConnectors"), "read-only keys are still readable via GetConfiguration")
	assert.False(t, s.IsWritable("NotARealKey"))
	assert.False(t, s.IsReadable("NotARealKey"))
}
