package postgres

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolSize(t *testing.T) {
	maxConns, minConns := poolSize(0, 2)
	assert.Equal(t, int32(25), maxConns)
	assert.Equal(t, int32(2), minConns)

	maxConns, minConns = poolSize(4, 10)
	assert.Equal(t, int32(4), maxConns)
	assert.Equal(t, int32(4), minConns)

	_, minConns = poolSize(5, -1)
	assert.Equal(t, int32(0), minConns)
}

func TestIPv4Dialer_LiteralAddresses(t *testing.T) {
	d := &ipv4Dialer{}

	ip, err := d.lookup(context.Background(), "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", ip)

	_, err = d.lookup(context.Background(), "::1")
	assert.ErrorIs(t, err, errNoIPv4)
}

func TestFirstIPv4(t *testing.T) {
	ip, ok := firstIPv4([]net.IP{net.ParseIP("2001:db8::1"), net.ParseIP("192.0.2.10")})
	assert.True(t, ok)
	assert.Equal(t, "192.0.2.10", ip)

	_, ok = firstIPv4([]net.IP{net.ParseIP("2001:db8::1")})
	assert.False(t, ok)
}
