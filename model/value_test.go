package model

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueVariants(t *testing.T) {
	f := Float(1.5)
	assert.Equal(t, KindFloat, f.Kind())
	fv, err := f.AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 1.5, fv)

	i := Int(42)
	assert.Equal(t, KindInt, i.Kind())
	iv, err := i.AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(42), iv)

	a := IPv4(netip.AddrFrom4([4]byte{10, 0, 0, 1}))
	assert.Equal(t, KindIPv4, a.Kind())
	assert.Equal(t, "10.0.0.1", a.String())

	m := MAC([6]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55})
	assert.Equal(t, KindMAC, m.Kind())
	assert.Equal(t, "00:11:22:33:44:55", m.String())

	assert.True(t, Empty.IsEmpty())
	assert.Equal(t, "Empty", Empty.String())
}

func TestValueZeroIsEmpty(t *testing.T) {
	var v Value
	assert.True(t, v.IsEmpty())
	assert.Equal(t, Empty, v)
}

func TestValueExtractionMismatch(t *testing.T) {
	_, err := Float(1.0).AsInt()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Int(1).AsFloat()
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Empty.AsInt()
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Int(1).AsIPv4()
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = Int(1).AsMAC()
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestValueStructuralEquality(t *testing.T) {
	a1 := IPv4(netip.AddrFrom4([4]byte{192, 168, 0, 1}))
	a2 := IPv4(netip.AddrFrom4([4]byte{192, 168, 0, 1}))
	assert.True(t, a1 == a2)
	assert.NotEqual(t, a1, IPv4(netip.AddrFrom4([4]byte{192, 168, 0, 2})))

	// Values of different variants never compare equal, even when the
	// underlying payloads look alike.
	assert.NotEqual(t, Int(0), Float(0))
}

func TestParseIPv4(t *testing.T) {
	v, err := ParseIPv4("127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, KindIPv4, v.Kind())

	_, err = ParseIPv4("not-an-ip")
	assert.Error(t, err)

	_, err = ParseIPv4("::1")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
