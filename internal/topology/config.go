package topology

import (
	"fmt"

	"floodnet/internal/configuration/properties"
	"floodnet/internal/domain"
)

// FromConfig builds and seals a registry. Full-mesh edges are added first,
// then explicit links in file order.
func FromConfig(cfg *properties.TopologyConfigProperties) (*Registry, error) {
	r := NewRegistry()

	for _, id := range cfg.Nodes {
		if _, err := r.Add(domain.NodeID(id)); err != nil {
			return nil, err
		}
	}

	if cfg.FullMesh {
		if err := r.FullMesh(); err != nil {
			return nil, err
		}
	}

	for i, l := range cfg.Links {
		from, to := domain.NodeID(l.From), domain.NodeID(l.To)
		var err error
		if l.Bidirectional {
			err = r.Connect(from, to)
		} else {
			err = r.Link(from, to)
		}
		if err != nil {
			return nil, fmt.Errorf("links[%d]: %w", i, err)
		}
	}

	r.Seal()
	return r, nil
}
