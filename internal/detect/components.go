package detect

import (
	"fmt"

	"github.com/heatwatch/heat-island-api-poc/internal/raster"
)

// Connectivity selects the pixel adjacency used for component labeling.
type Connectivity int

const (
	Connectivity4 Connectivity = 4
	Connectivity8 Connectivity = 8
)

// Clean removes small patches from a mask: set pixels are grouped into
// connected components and a pixel survives only if its component counts
// at least minSize pixels. Component counting saturates at sizeCap, so a
// component that reaches the cap is treated as large enough without being
// counted exactly; sizeCap must therefore be at least minSize, and the
// configuration is rejected otherwise. The output is always a pixel
// subset of the input, and does not depend on visitation order.
//
// Components never wrap across the grid boundary; edge pixels simply have
// fewer neighbors.
func Clean(m *raster.Mask, minSize, sizeCap int, conn Connectivity) (*raster.Mask, error) {
	if minSize < 1 {
		return nil, fmt.Errorf("minimum component size %d must be at least 1", minSize)
	}
	if sizeCap < minSize {
		return nil, fmt.Errorf("component size cap %d is below minimum component size %d", sizeCap, minSize)
	}
	if conn != Connectivity4 && conn != Connectivity8 {
		return nil, fmt.Errorf("connectivity must be 4 or 8, got %d", conn)
	}

	uf := label(m, sizeCap, conn)
	set := make([]bool, len(m.Set))
	for i, on := range m.Set {
		set[i] = on && int(uf.size[uf.find(i)]) >= minSize
	}
	return &raster.Mask{
		Width:        m.Width,
		Height:       m.Height,
		GeoTransform: m.GeoTransform,
		Geographic:   m.Geographic,
		Set:          set,
	}, nil
}

// Components returns a per-pixel component id (-1 for unset pixels) and
// the number of components. Ids are assigned in row-major order of each
// component's first pixel, so they are stable for a given mask.
func Components(m *raster.Mask, conn Connectivity) ([]int, int) {
	uf := label(m, len(m.Set), conn)
	ids := make([]int, len(m.Set))
	next := 0
	assigned := make(map[int]int)
	for i, on := range m.Set {
		if !on {
			ids[i] = -1
			continue
		}
		root := uf.find(i)
		id, ok := assigned[root]
		if !ok {
			id = next
			next++
			assigned[root] = id
		}
		ids[i] = id
	}
	return ids, next
}

// unionFind labels set pixels with saturating component size counting.
type unionFind struct {
	parent []int32
	size   []int32
	cap    int32
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != int32(i) {
		u.parent[i] = u.parent[u.parent[i]] // path halving
		i = int(u.parent[i])
	}
	return i
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.size[ra] < u.size[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = int32(ra)
	total := u.size[ra] + u.size[rb]
	if total > u.cap {
		total = u.cap
	}
	u.size[ra] = total
}

func label(m *raster.Mask, sizeCap int, conn Connectivity) *unionFind {
	n := len(m.Set)
	uf := &unionFind{
		parent: make([]int32, n),
		size:   make([]int32, n),
		cap:    int32(sizeCap),
	}
	for i, on := range m.Set {
		uf.parent[i] = int32(i)
		if on {
			uf.size[i] = 1
		}
	}

	w := m.Width
	for row := 0; row < m.Height; row++ {
		for col := 0; col < w; col++ {
			i := row*w + col
			if !m.Set[i] {
				continue
			}
			if col > 0 && m.Set[i-1] {
				uf.union(i, i-1)
			}
			if row > 0 && m.Set[i-w] {
				uf.union(i, i-w)
			}
			if conn == Connectivity8 && row > 0 {
				if col > 0 && m.Set[i-w-1] {
					uf.union(i, i-w-1)
				}
				if col < w-1 && m.Set[i-w+1] {
					uf.union(i, i-w+1)
				}
			}
		}
	}
	return uf
}
