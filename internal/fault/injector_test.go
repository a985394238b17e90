package fault

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floodnet/internal/configuration/properties"
	"floodnet/internal/domain"
	"floodnet/internal/metrics"
	"floodnet/internal/topology"
)

func newMesh(t *testing.T, ids ...uint64) *topology.Registry {
	t.Helper()
	r, err := topology.FromConfig(&properties.TopologyConfigProperties{Nodes: ids, FullMesh: true})
	require.NoError(t, err)
	return r
}

func TestInjector_PartitionAndRecover(t *testing.T) {
	r := newMesh(t, 1, 2, 3)
	inj := NewInjector(r)

	require.NoError(t, inj.Partition("p", 1, 2))
	assert.True(t, r.MustGet(1).Unreachable())
	assert.True(t, r.MustGet(2).Unreachable())
	assert.False(t, r.MustGet(3).Unreachable())
	assert.Equal(t, []string{"p"}, inj.Active())

	require.NoError(t, inj.Recover("p"))
	assert.False(t, r.MustGet(1).Unreachable())
	assert.False(t, r.MustGet(2).Unreachable())
	assert.Empty(t, inj.Active())
}

func TestInjector_UnknownNode(t *testing.T) {
	inj := NewInjector(newMesh(t, 1))

	err := inj.Partition("p", 1, 5)
	require.ErrorIs(t, err, topology.ErrUnknownNode)
	assert.Empty(t, inj.Active())
}

func TestInjector_UnknownPartition(t *testing.T) {
	inj := NewInjector(newMesh(t, 1))

	require.ErrorIs(t, inj.Recover("nope"), ErrUnknownPartition)
}

func TestInjector_DuplicateName(t *testing.T) {
	inj := NewInjector(newMesh(t, 1, 2))
	require.NoError(t, inj.Partition("p", 1))

	require.ErrorIs(t, inj.Partition("p", 2), ErrPartitionExists)
}

func TestInjector_OverlappingPartitions(t *testing.T) {
	r := newMesh(t, 1, 2, 3)
	inj := NewInjector(r)
	require.NoError(t, inj.Partition("a", 1, 2))
	require.NoError(t, inj.Partition("b", 2, 3))

	require.NoError(t, inj.Recover("a"))

	assert.False(t, r.MustGet(1).Unreachable())
	assert.True(t, r.MustGet(2).Unreachable(), "node 2 is still held by partition b")
	assert.True(t, r.MustGet(3).Unreachable())

	inj.RecoverAll()
	for _, n := range r.Nodes() {
		assert.False(t, n.Unreachable(), "node %d", n.ID())
	}
	assert.Empty(t, inj.Active())
}

func TestInjector_ReachAnyNode(t *testing.T) {
	r, err := topology.FromConfig(&properties.TopologyConfigProperties{
		Nodes: []uint64{1, 2, 3},
		Links: []properties.LinkConfigProperties{{From: 1, To: 2}},
	})
	require.NoError(t, err)
	inj := NewInjector(r)

	require.NoError(t, inj.Partition("isolated", 3))
	assert.True(t, r.MustGet(3).Unreachable())
}

func TestInjector_PartitionSilencesTraffic(t *testing.T) {
	r := newMesh(t, 1, 2, 3)
	inj := NewInjector(r)
	r.MustGet(1).Propose(1)
	require.NoError(t, inj.Partition("isolate-1", 1))
	before := r.MustGet(1).RetrieveLog()

	r.MustGet(2).Propose(2)

	assert.Equal(t, before, r.MustGet(1).RetrieveLog())
	s, _ := r.MustGet(1).State()
	assert.Equal(t, domain.Value(1), s)
	s, _ = r.MustGet(2).State()
	assert.Equal(t, domain.Value(2), s)
	p, _ := r.MustGet(3).ProposedState()
	assert.Equal(t, domain.Value(2), p)
}

func TestInjector_UpdatesMetrics(t *testing.T) {
	inj := NewInjector(newMesh(t, 1, 2))
	gauge := testutil.ToFloat64(metrics.UnreachableNodes)
	partitions := testutil.ToFloat64(metrics.PartitionsTotal.WithLabelValues("partition"))

	require.NoError(t, inj.Partition("p", 1, 2))
	assert.Equal(t, gauge+2, testutil.ToFloat64(metrics.UnreachableNodes))
	assert.Equal(t, partitions+1, testutil.ToFloat64(metrics.PartitionsTotal.WithLabelValues("partition")))

	require.NoError(t, inj.Recover("p"))
	assert.Equal(t, gauge, testutil.ToFloat64(metrics.UnreachableNodes))
}
