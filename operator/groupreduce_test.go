package operator

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowsift/flowsift/model"
)

func ip(last byte) model.Value {
	return model.IPv4(netip.AddrFrom4([4]byte{10, 0, 0, last}))
}

func TestGroupReduceCounter(t *testing.T) {
	out := &collect{}
	op := NewGroupReduce(Project("ipv4.dst"), Counter, "pkts", out)

	for i := 0; i < 5; i++ {
		require.NoError(t, op.Consume(model.Record{"ipv4.dst": ip(1), "x": model.Int(int64(i))}))
	}
	require.NoError(t, op.Advance(model.Record{"eid": model.Int(0)}))

	// N records with one grouping key yield exactly one output with the
	// aggregate equal to N, overlaid on the advance record.
	require.Len(t, out.records, 1)
	got := out.records[0]
	assert.Equal(t, model.Int(5), got["pkts"])
	assert.Equal(t, ip(1), got["ipv4.dst"])
	assert.Equal(t, model.Int(0), got["eid"])
	require.Len(t, out.advances, 1)
	assert.Equal(t, 0, op.Len(), "table must be empty after Advance")
}

func TestGroupReduceFlushCompleteness(t *testing.T) {
	out := &collect{}
	op := NewGroupReduce(Project("ipv4.dst"), Counter, "pkts", out)

	distinct := []byte{1, 2, 3, 4}
	for _, last := range distinct {
		require.NoError(t, op.Consume(model.Record{"ipv4.dst": ip(last)}))
		require.NoError(t, op.Consume(model.Record{"ipv4.dst": ip(last)}))
	}
	assert.Equal(t, len(distinct), op.Len())

	require.NoError(t, op.Advance(model.Record{"eid": model.Int(3)}))
	assert.Len(t, out.records, len(distinct))
	assert.Equal(t, 0, op.Len())

	// A fresh window starts from scratch.
	require.NoError(t, op.Consume(model.Record{"ipv4.dst": ip(1)}))
	require.NoError(t, op.Advance(model.Record{"eid": model.Int(4)}))
	assert.Equal(t, model.Int(1), out.records[len(out.records)-1]["pkts"])
}

func TestGroupReduceWholeGroup(t *testing.T) {
	out := &collect{}
	op := NewGroupReduce(WholeGroup, Counter, "pkts", out)

	for _, last := range []byte{1, 2, 3} {
		require.NoError(t, op.Consume(model.Record{"ipv4.dst": ip(last)}))
	}
	require.NoError(t, op.Advance(model.Record{"eid": model.Int(0)}))

	require.Len(t, out.records, 1)
	assert.Equal(t, model.Int(3), out.records[0]["pkts"])
}

func TestGroupReduceSumInts(t *testing.T) {
	out := &collect{}
	op := NewGroupReduce(Project("ipv4.dst"), SumInts("ipv4.len"), "bytes", out)

	for _, n := range []int64{60, 40, 1500} {
		require.NoError(t, op.Consume(model.Record{"ipv4.dst": ip(1), "ipv4.len": model.Int(n)}))
	}
	require.NoError(t, op.Advance(model.Record{"eid": model.Int(0)}))

	require.Len(t, out.records, 1)
	assert.Equal(t, model.Int(1600), out.records[0]["bytes"])
}

func TestSumIntsContractErrors(t *testing.T) {
	op := NewGroupReduce(WholeGroup, SumInts("ipv4.len"), "bytes", &collect{})

	err := op.Consume(model.Record{"other": model.Int(1)})
	assert.ErrorIs(t, err, model.ErrMissingField)

	err = op.Consume(model.Record{"ipv4.len": model.Float(60)})
	assert.ErrorIs(t, err, model.ErrTypeMismatch)
}

func TestCounterRejectsForeignAccumulator(t *testing.T) {
	_, err := Counter(model.Float(1), model.Record{})
	assert.ErrorIs(t, err, model.ErrTypeMismatch)
}

func TestDeduplicateIdempotence(t *testing.T) {
	out := &collect{}
	op := NewDeduplicate(Project("ipv4.src"), out)

	for i := 0; i < 10; i++ {
		require.NoError(t, op.Consume(model.Record{"ipv4.src": ip(1), "seq": model.Int(int64(i))}))
	}
	require.NoError(t, op.Consume(model.Record{"ipv4.src": ip(2)}))
	require.NoError(t, op.Advance(model.Record{"eid": model.Int(0)}))

	// One emission per distinct key per window, whatever the repetition.
	require.Len(t, out.records, 2)
	for _, r := range out.records {
		assert.Equal(t, model.Int(0), r["eid"])
	}
	assert.Equal(t, 0, op.Len())
	require.Len(t, out.advances, 1)

	// Next window sees the same key again.
	require.NoError(t, op.Consume(model.Record{"ipv4.src": ip(1)}))
	require.NoError(t, op.Advance(model.Record{"eid": model.Int(1)}))
	assert.Len(t, out.records, 3)
}
