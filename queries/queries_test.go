package queries

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowsift/flowsift/model"
	"github.com/flowsift/flowsift/operator"
	"github.com/flowsift/flowsift/sink"
)

func addr(last byte) model.Value {
	return model.IPv4(netip.AddrFrom4([4]byte{10, 0, 0, last}))
}

// packet builds a TCP packet record with the fields the queries touch.
func packet(time float64, src, dst byte, sport, dport, flags, length int64) model.Record {
	return model.Record{
		"time":       model.Float(time),
		"ipv4.proto": model.Int(6),
		"ipv4.len":   model.Int(length),
		"ipv4.src":   addr(src),
		"ipv4.dst":   addr(dst),
		"l4.sport":   model.Int(sport),
		"l4.dport":   model.Int(dport),
		"l4.flags":   model.Int(flags),
	}
}

func runQuery(t *testing.T, build Builder, packets []model.Record) *sink.Collector {
	t.Helper()
	out := &sink.Collector{}
	head := build(out)
	for _, p := range packets {
		require.NoError(t, head.Consume(p))
	}
	require.NoError(t, head.Advance(model.Record{}))
	return out
}

func TestIdentStripsEthernetFields(t *testing.T) {
	out := runQuery(t, Ident, SamplePackets(1))
	require.Len(t, out.Records, 1)
	_, ok := out.Records[0]["eth.src"]
	assert.False(t, ok)
	_, ok = out.Records[0]["eth.dst"]
	assert.False(t, ok)
	_, ok = out.Records[0]["ipv4.src"]
	assert.True(t, ok)
}

// The reference scenario: 20 packets one second apart, one-second
// windows, counting per destination. Every window holds exactly one
// packet, so every flush emits exactly one record with a count of one.
func TestPerWindowCountScenario(t *testing.T) {
	packets := make([]model.Record, 0, 20)
	for i := 0; i < 20; i++ {
		flags := int64(2)
		if i%2 == 1 {
			flags = 16
		}
		packets = append(packets, packet(float64(i), 1, 2, 440, 50000, flags, 60))
	}

	out := &sink.Collector{}
	head := operator.NewEpoch(1.0, EIDKey,
		operator.NewGroupReduce(operator.Project("ipv4.dst"), operator.Counter, "cons", out))
	for _, p := range packets {
		require.NoError(t, head.Consume(p))
	}
	require.NoError(t, head.Advance(model.Record{}))

	require.Len(t, out.Records, 20)
	for i, r := range out.Records {
		assert.Equal(t, model.Int(1), r["cons"], "window %d", i)
		assert.Equal(t, model.Int(int64(i)), r[EIDKey])
		assert.Equal(t, addr(2), r["ipv4.dst"])
	}
}

func TestCountPkts(t *testing.T) {
	out := runQuery(t, CountPkts, SamplePackets(20))

	// One flush per one-second window, each counting one packet.
	require.Len(t, out.Records, 20)
	for _, r := range out.Records {
		assert.Equal(t, model.Int(1), r["pkts"])
	}
}

func TestPktsPerSrcDst(t *testing.T) {
	packets := []model.Record{
		packet(0.0, 1, 2, 1, 80, 2, 60),
		packet(0.1, 1, 2, 2, 80, 2, 60),
		packet(0.2, 3, 2, 3, 80, 2, 60),
	}
	out := runQuery(t, PktsPerSrcDst, packets)

	require.Len(t, out.Records, 2)
	counts := map[string]int64{}
	for _, r := range out.Records {
		n, err := r.Int("pkts")
		require.NoError(t, err)
		counts[r["ipv4.src"].String()] = n
	}
	assert.Equal(t, map[string]int64{"10.0.0.1": 2, "10.0.0.3": 1}, counts)
}

func TestDistinctSrcs(t *testing.T) {
	packets := []model.Record{
		packet(0.0, 1, 9, 1, 80, 2, 60),
		packet(0.1, 1, 9, 2, 80, 2, 60),
		packet(0.2, 2, 9, 3, 80, 2, 60),
		packet(0.3, 3, 9, 4, 80, 2, 60),
	}
	out := runQuery(t, DistinctSrcs, packets)

	require.Len(t, out.Records, 1)
	assert.Equal(t, model.Int(3), out.Records[0]["srcs"])
}

func TestTCPNewCons(t *testing.T) {
	packets := make([]model.Record, 0, 50)
	// 45 connection attempts to one host, 5 to another: only the first
	// crosses the threshold.
	for i := 0; i < 45; i++ {
		packets = append(packets, packet(0.01*float64(i), byte(i%10+1), 2, int64(i), 80, 2, 60))
	}
	for i := 0; i < 5; i++ {
		packets = append(packets, packet(0.5, 1, 3, int64(i), 80, 2, 60))
	}
	out := runQuery(t, TCPNewCons, packets)

	require.Len(t, out.Records, 1)
	assert.Equal(t, model.Int(45), out.Records[0]["cons"])
	assert.Equal(t, addr(2), out.Records[0]["ipv4.dst"])
}

func TestPortScan(t *testing.T) {
	packets := make([]model.Record, 0, 80)
	// One source probing 40 ports, another probing 3.
	for p := 0; p < 40; p++ {
		packets = append(packets, packet(0.01*float64(p), 1, 2, 999, int64(p), 2, 60))
	}
	for p := 0; p < 3; p++ {
		packets = append(packets, packet(0.5, 4, 2, 999, int64(p), 2, 60))
	}
	out := runQuery(t, PortScan, packets)

	require.Len(t, out.Records, 1)
	assert.Equal(t, model.Int(40), out.Records[0]["ports"])
	assert.Equal(t, addr(1), out.Records[0]["ipv4.src"])
}

func TestSuperSpreader(t *testing.T) {
	packets := make([]model.Record, 0, 40)
	for d := 0; d < 40; d++ {
		packets = append(packets, packet(0.01*float64(d), 7, byte(d+10), 1, 80, 2, 60))
	}
	out := runQuery(t, SuperSpreader, packets)

	require.Len(t, out.Records, 1)
	assert.Equal(t, model.Int(40), out.Records[0]["dsts"])
}

func TestDDoS(t *testing.T) {
	below := make([]model.Record, 0, 44)
	for s := 0; s < 44; s++ {
		below = append(below, packet(0.01*float64(s), byte(s+1), 200, 1, 80, 2, 60))
	}
	out := runQuery(t, DDoS, below)
	assert.Empty(t, out.Records, "44 distinct sources stay below the threshold")

	above := make([]model.Record, 0, 45)
	for s := 0; s < 45; s++ {
		above = append(above, packet(0.01*float64(s), byte(s+1), 200, 1, 80, 2, 60))
	}
	out = runQuery(t, DDoS, above)
	require.Len(t, out.Records, 1)
	assert.Equal(t, model.Int(45), out.Records[0]["srcs"])
}

func TestSSHBruteForce(t *testing.T) {
	packets := make([]model.Record, 0, 40)
	// 40 distinct clients sending same-length packets to one SSH server.
	for s := 0; s < 40; s++ {
		packets = append(packets, packet(0.01*float64(s), byte(s+1), 250, 1, 22, 2, 64))
	}
	out := runQuery(t, SSHBruteForce, packets)

	require.Len(t, out.Records, 1)
	assert.Equal(t, model.Int(40), out.Records[0]["srcs"])
	assert.Equal(t, model.Int(64), out.Records[0]["ipv4.len"])
}

func TestRegistry(t *testing.T) {
	b, ok := Lookup("count_pkts")
	require.True(t, ok)
	assert.NotNil(t, b)

	_, ok = Lookup("no_such_query")
	assert.False(t, ok)

	m, ok := LookupMulti("syn_flood_sonata")
	require.True(t, ok)
	assert.Len(t, m(operator.Func{}), 3)

	names := Names()
	assert.Contains(t, names, "ddos")
	assert.Contains(t, names, "slowloris")
	assert.True(t, sortedStrings(names))
}

func sortedStrings(ss []string) bool {
	for i := 1; i < len(ss); i++ {
		if ss[i-1] > ss[i] {
			return false
		}
	}
	return true
}
