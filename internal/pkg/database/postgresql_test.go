package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDSN = "postgres://u:p@localhost:5432/attendance?sslmode=disable"

func TestPoolConfig_AppliesOptions(t *testing.T) {
	config, err := poolConfig(testDSN, PoolOptions{
		MaxConns:        8,
		MinConns:        2,
		MaxConnLifetime: 30 * time.Minute,
		ConnectTimeout:  3 * time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(8), config.MaxConns)
	assert.Equal(t, int32(2), config.MinConns)
	assert.Equal(t, 30*time.Minute, config.MaxConnLifetime)
	assert.Equal(t, 3*time.Second, config.ConnConfig.ConnectTimeout)
}

func TestPoolConfig_ZeroKeepsDefaults(t *testing.T) {
	defaults, err := poolConfig(testDSN, PoolOptions{})
	require.NoError(t, err)

	assert.Positive(t, defaults.MaxConns)
	assert.Equal(t, int32(0), defaults.MinConns)
}

func TestPoolConfig_Rejects(t *testing.T) {
	_, err := poolConfig(testDSN, PoolOptions{MaxConns: 2, MinConns: 5})
	assert.Error(t, err)

	_, err = poolConfig(testDSN, PoolOptions{MaxConns: -1})
	assert.Error(t, err)

	_, err = poolConfig("postgres://u:p@localhost:notaport/attendance", PoolOptions{})
	assert.Error(t, err)
}
