package sink

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowsift/flowsift/model"
	"github.com/flowsift/flowsift/operator"
)

func TestWaltsCSVWrite(t *testing.T) {
	var buf bytes.Buffer
	s := NewWaltsCSV(&buf, "eid")

	src, err := model.ParseIPv4("10.0.0.1")
	require.NoError(t, err)
	dst, err := model.ParseIPv4("10.0.0.2")
	require.NoError(t, err)

	require.NoError(t, s.Consume(model.Record{
		"ipv4.src":     src,
		"ipv4.dst":     dst,
		"l4.sport":     model.Int(440),
		"l4.dport":     model.Int(22),
		"packet_count": model.Int(10),
		"byte_count":   model.Int(600),
		"eid":          model.Int(0),
	}))

	assert.Equal(t, "10.0.0.1,10.0.0.2,440,22,10,600,0\n", buf.String())
}

func TestWaltsCSVWriteMissingField(t *testing.T) {
	s := NewWaltsCSV(io.Discard, "")
	err := s.Consume(model.Record{"ipv4.src": model.Int(0)})
	assert.ErrorIs(t, err, model.ErrMissingField)
}

func TestReadWaltsCSV(t *testing.T) {
	input := strings.Join([]string{
		"10.0.0.1,10.0.0.2,440,22,10,600,0",
		"10.0.0.1,10.0.0.2,441,22,5,300,0",
		"0,10.0.0.2,442,22,1,60,2",
	}, "\n")

	c := &Collector{}
	require.NoError(t, ReadWaltsCSV([]io.Reader{strings.NewReader(input)}, "eid", []operator.Operator{c}))

	require.Len(t, c.Records, 3)
	// The literal "0" IP column decodes to the integer zero.
	assert.Equal(t, model.Int(0), c.Records[2]["ipv4.src"])
	assert.Equal(t, model.KindIPv4, c.Records[2]["ipv4.dst"].Kind())
	assert.Equal(t, model.Int(2), c.Records[2]["eid"])

	// Epoch 0 -> 2 skips window 1: one Advance per passed window, each
	// carrying the window id and the record count, plus the final one at
	// end of input.
	require.Len(t, c.Advances, 3)
	assert.Equal(t, model.Int(0), c.Advances[0]["eid"])
	assert.Equal(t, model.Int(2), c.Advances[0][TuplesKey])
	assert.Equal(t, model.Int(1), c.Advances[1]["eid"])
	assert.Equal(t, model.Int(0), c.Advances[1][TuplesKey])
	assert.Equal(t, model.Int(3), c.Advances[2]["eid"])
	assert.Equal(t, model.Int(1), c.Advances[2][TuplesKey])
}

func TestReadWaltsCSVRoundTrip(t *testing.T) {
	rows := "10.0.0.1,10.0.0.2,440,22,10,600,0\n0,10.0.0.2,441,23,5,300,1\n"

	var buf bytes.Buffer
	w := NewWaltsCSV(&buf, "eid")
	require.NoError(t, ReadWaltsCSV([]io.Reader{strings.NewReader(rows)}, "eid", []operator.Operator{w}))

	assert.Equal(t, rows, buf.String())
}

func TestReadWaltsCSVMalformed(t *testing.T) {
	c := &Collector{}
	err := ReadWaltsCSV([]io.Reader{strings.NewReader("1,2,3\n")}, "eid", []operator.Operator{c})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "7 columns")
}

func TestReadWaltsCSVArityMismatch(t *testing.T) {
	err := ReadWaltsCSV([]io.Reader{strings.NewReader("")}, "eid", nil)
	assert.Error(t, err)
}

func TestReadWaltsCSVInterleavesInputs(t *testing.T) {
	a := "10.0.0.1,10.0.0.2,1,1,1,1,0\n"
	b := "10.0.0.3,10.0.0.4,2,2,2,2,0\n10.0.0.3,10.0.0.4,3,3,3,3,0\n"

	ca, cb := &Collector{}, &Collector{}
	require.NoError(t, ReadWaltsCSV(
		[]io.Reader{strings.NewReader(a), strings.NewReader(b)},
		"eid",
		[]operator.Operator{ca, cb}))

	assert.Len(t, ca.Records, 1)
	assert.Len(t, cb.Records, 2)
	// Each exhausted input gets its own final Advance.
	assert.Len(t, ca.Advances, 1)
	assert.Len(t, cb.Advances, 1)
}
