package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floodnet/internal/configuration/properties"
	"floodnet/internal/domain"
)

func neighborIDs(r *Registry, id domain.NodeID) []domain.NodeID {
	var out []domain.NodeID
	for _, n := range r.MustGet(id).Neighbors() {
		out = append(out, n.ID())
	}
	return out
}

func TestRegistry_AddAndGet(t *testing.T) {
	r := NewRegistry()

	n, err := r.Add(3)
	require.NoError(t, err)

	got, ok := r.Get(3)
	require.True(t, ok)
	assert.Same(t, n, got)

	_, ok = r.Get(4)
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_DuplicateNode(t *testing.T) {
	r := NewRegistry()
	_, err := r.Add(1)
	require.NoError(t, err)

	_, err = r.Add(1)
	require.ErrorIs(t, err, ErrDuplicateNode)
}

func TestRegistry_IDsInRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []domain.NodeID{5, 1, 3} {
		_, err := r.Add(id)
		require.NoError(t, err)
	}

	assert.Equal(t, []domain.NodeID{5, 1, 3}, r.IDs())
	nodes := r.Nodes()
	require.Len(t, nodes, 3)
	assert.EqualValues(t, 5, nodes[0].ID())
}

func TestRegistry_LinkIsDirected(t *testing.T) {
	r := NewRegistry()
	r.Add(1)
	r.Add(2)

	require.NoError(t, r.Link(1, 2))

	assert.Equal(t, []domain.NodeID{2}, neighborIDs(r, 1))
	assert.Empty(t, neighborIDs(r, 2))
}

func TestRegistry_ConnectIsBidirectional(t *testing.T) {
	r := NewRegistry()
	r.Add(1)
	r.Add(2)

	require.NoError(t, r.Connect(1, 2))

	assert.Equal(t, []domain.NodeID{2}, neighborIDs(r, 1))
	assert.Equal(t, []domain.NodeID{1}, neighborIDs(r, 2))
}

func TestRegistry_LinkErrors(t *testing.T) {
	r := NewRegistry()
	r.Add(1)

	require.ErrorIs(t, r.Link(1, 9), ErrUnknownNode)
	require.ErrorIs(t, r.Link(9, 1), ErrUnknownNode)
	require.ErrorIs(t, r.Link(1, 1), ErrSelfLink)
}

func TestRegistry_SealBlocksSetup(t *testing.T) {
	r := NewRegistry()
	r.Add(1)
	r.Add(2)
	r.Seal()

	assert.True(t, r.Sealed())
	require.ErrorIs(t, r.Link(1, 2), ErrSealed)
	_, err := r.Add(3)
	require.ErrorIs(t, err, ErrSealed)
	require.ErrorIs(t, r.FullMesh(), ErrSealed)
}

func TestRegistry_FullMeshOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []domain.NodeID{1, 2, 3} {
		r.Add(id)
	}

	require.NoError(t, r.FullMesh())

	assert.Equal(t, []domain.NodeID{2, 3}, neighborIDs(r, 1))
	assert.Equal(t, []domain.NodeID{1, 3}, neighborIDs(r, 2))
	assert.Equal(t, []domain.NodeID{1, 2}, neighborIDs(r, 3))
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()
	r.Add(1)
	r.Add(2)

	nodes, err := r.Resolve(2, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, nodes[0].ID())

	_, err = r.Resolve(1, 7)
	require.ErrorIs(t, err, ErrUnknownNode)
}

func TestRegistry_EntriesMergeAcrossNodes(t *testing.T) {
	r := NewRegistry()
	r.Add(1)
	r.Add(2)
	require.NoError(t, r.Connect(1, 2))
	r.Seal()

	r.MustGet(1).Propose(4)

	var texts []string
	for _, e := range r.Entries() {
		texts = append(texts, e.Text)
	}
	assert.Equal(t, []string{
		"Node 1 proposed state 4",
		"Received propose_state(4) from Node 1",
		"Node 2 accepted proposed state 4 from Node 1",
		"Received accept_state(4) from Node 2",
		"Node 1 accepted new state 4 from Node 2",
		"Sent accept_state(4) to Node 1",
		"Sent propose_state(4) to Node 2",
	}, texts)

	l, ok := r.Log(2)
	require.True(t, ok)
	assert.Equal(t, 3, l.Len())
}

func TestRegistry_MustGetPanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { NewRegistry().MustGet(1) })
}

func TestFromConfig(t *testing.T) {
	r, err := FromConfig(&properties.TopologyConfigProperties{
		Nodes: []uint64{1, 2, 3, 4},
		Links: []properties.LinkConfigProperties{
			{From: 1, To: 2, Bidirectional: true},
			{From: 3, To: 4},
			{From: 1, To: 3},
		},
	})
	require.NoError(t, err)

	assert.True(t, r.Sealed())
	assert.Equal(t, []domain.NodeID{2, 3}, neighborIDs(r, 1))
	assert.Equal(t, []domain.NodeID{1}, neighborIDs(r, 2))
	assert.Equal(t, []domain.NodeID{4}, neighborIDs(r, 3))
	assert.Empty(t, neighborIDs(r, 4))
}

func TestFromConfig_FullMeshPlusLinksKeepsDuplicates(t *testing.T) {
	r, err := FromConfig(&properties.TopologyConfigProperties{
		Nodes:    []uint64{1, 2},
		FullMesh: true,
		Links:    []properties.LinkConfigProperties{{From: 1, To: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.NodeID{2, 2}, neighborIDs(r, 1))
}

func TestFromConfig_Errors(t *testing.T) {
	_, err := FromConfig(&properties.TopologyConfigProperties{Nodes: []uint64{1, 1}})
	require.ErrorIs(t, err, ErrDuplicateNode)

	_, err = FromConfig(&properties.TopologyConfigProperties{
		Nodes: []uint64{1},
		Links: []properties.LinkConfigProperties{{From: 1, To: 2}},
	})
	require.ErrorIs(t, err, ErrUnknownNode)
	assert.Contains(t, err.Error(), "links[0]")
}
