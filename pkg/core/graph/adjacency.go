package graph

import (
	"log/slog"
	"slices"
	"sort"
	"time"

	"github.com/sanonone/hetgraph/pkg/core/iloc"
	"github.com/sanonone/hetgraph/pkg/metrics"
)

// Adjacency view construction. Every view is built through a single global
// stable sort of the edge index space rather than per-node containers: the
// sorted order of the endpoint column is the flat array, and a bucket count
// over the same column prefix-sums into the splits.

// argsortStable returns the permutation of [0, n) that stable-sorts the
// values produced by key.
func argsortStable(n int, key func(int) int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return key(order[a]) < key(order[b])
	})
	return order
}

// splitsFrom prefix-sums per-node counts into a splits array of length
// len(counts)+1.
func splitsFrom(counts []int) []int {
	splits := make([]int, len(counts)+1)
	for i, c := range counts {
		splits[i+1] = splits[i] + c
	}
	return splits
}

// sortedUnique returns the distinct values of vals in ascending order.
func sortedUnique(vals []int) []int {
	out := slices.Clone(vals)
	slices.Sort(out)
	return slices.Compact(out)
}

func observeBuild(view string, start time.Time, entries int) {
	elapsed := time.Since(start)
	metrics.AdjacencyBuildsTotal.WithLabelValues(view).Inc()
	metrics.AdjacencyBuildDuration.WithLabelValues(view).Observe(elapsed.Seconds())
	slog.Debug("built adjacency view", "view", view, "entries", entries, "elapsed", elapsed)
}

// groupByNode groups the edge ilocs by one endpoint column: the flat array
// is the stable argsort of the column, the splits come from a bucket count
// over it.
func (d *EdgeData[ID, NID]) groupByNode(keys *iloc.Array) *Ragged {
	numEdges := keys.Len()
	order := argsortStable(numEdges, keys.Get)

	counts := make([]int, d.numNodes)
	for i := 0; i < numEdges; i++ {
		counts[keys.Get(i)]++
	}

	return newRagged(iloc.FromInts(iloc.WidthFor(numEdges), order), splitsFrom(counts))
}

func (d *EdgeData[ID, NID]) initDirected() {
	start := time.Now()
	d.inAdj = d.groupByNode(d.targets)
	d.outAdj = d.groupByNode(d.sources)
	observeBuild("directed", start, d.inAdj.Len()+d.outAdj.Len())
}

// combineSourcesTargets concatenates the source and target columns into one
// array of length 2E: position i < E is edge i seen from its source,
// position E+i is edge i seen from its target. The target-side entry of
// every self-loop is overwritten with a sentinel that sorts after all valid
// node ilocs, so self-loops appear once per group, not twice.
func (d *EdgeData[ID, NID]) combineSourcesTargets() (combined []int, numSelfLoops int) {
	numEdges := d.sources.Len()
	sentinel := d.numNodes

	combined = make([]int, 2*numEdges)
	for i := 0; i < numEdges; i++ {
		src, tgt := d.sources.Get(i), d.targets.Get(i)
		combined[i] = src
		if src == tgt {
			combined[numEdges+i] = sentinel
			numSelfLoops++
		} else {
			combined[numEdges+i] = tgt
		}
	}
	return combined, numSelfLoops
}

func (d *EdgeData[ID, NID]) initUndirected() {
	start := time.Now()
	numEdges := d.sources.Len()
	sentinel := d.numNodes

	combined, numSelfLoops := d.combineSourcesTargets()
	order := argsortStable(len(combined), func(i int) int { return combined[i] })

	// the sentinels sorted to the very end; drop them, then recover edge
	// ilocs from combined positions
	if numSelfLoops > 0 {
		order = order[:len(order)-numSelfLoops]
	}
	for i := range order {
		order[i] %= numEdges
	}

	// count as source plus count as self-loop-filtered target, so a
	// self-loop contributes 1 to its node, not 2
	counts := make([]int, d.numNodes)
	for i := 0; i < numEdges; i++ {
		counts[d.sources.Get(i)]++
	}
	for i := numEdges; i < 2*numEdges; i++ {
		if combined[i] != sentinel {
			counts[combined[i]]++
		}
	}

	d.bothAdj = newRagged(iloc.FromInts(iloc.WidthFor(numEdges), order), splitsFrom(counts))
	observeBuild("undirected", start, d.bothAdj.Len())
}

// endpointTypeCodes resolves, per edge, the node-type iloc of one endpoint
// column.
func (d *EdgeData[ID, NID]) endpointTypeCodes(keys *iloc.Array) []int {
	codes := d.nodes.TypeCodes()
	out := make([]int, keys.Len())
	for i := range out {
		out[i] = codes.Get(keys.Get(i))
	}
	return out
}

// groupByNodeOtherType groups edge ilocs by one endpoint column, split into
// one Ragged per distinct type of the opposite endpoint. The argsort is done
// once; each type re-derives counts and filters the sorted order through a
// mask instead of re-sorting.
func (d *EdgeData[ID, NID]) groupByNodeOtherType(keys *iloc.Array, otherTypes []int) map[int]*Ragged {
	numEdges := keys.Len()
	order := argsortStable(numEdges, keys.Get)

	index := make(map[int]*Ragged)
	for _, typeCode := range sortedUnique(otherTypes) {
		counts := make([]int, d.numNodes)
		for i := 0; i < numEdges; i++ {
			if otherTypes[i] == typeCode {
				counts[keys.Get(i)]++
			}
		}
		splits := splitsFrom(counts)

		flat := make([]int, 0, splits[d.numNodes])
		for _, p := range order {
			if otherTypes[p] == typeCode {
				flat = append(flat, p)
			}
		}

		index[typeCode] = newRagged(iloc.FromInts(iloc.WidthFor(numEdges), flat), splits)
	}
	return index
}

func (d *EdgeData[ID, NID]) initDirectedByType() {
	start := time.Now()
	srcTypes := d.endpointTypeCodes(d.sources)
	tgtTypes := d.endpointTypeCodes(d.targets)

	// for incoming edges the "other" endpoint is the source, and vice versa
	d.inAdjByType = d.groupByNodeOtherType(d.targets, srcTypes)
	d.outAdjByType = d.groupByNodeOtherType(d.sources, tgtTypes)
	observeBuild("directed_by_type", start, 2*d.sources.Len())
}

func (d *EdgeData[ID, NID]) initUndirectedByType() {
	start := time.Now()
	numEdges := d.sources.Len()

	srcTypes := d.endpointTypeCodes(d.sources)
	tgtTypes := d.endpointTypeCodes(d.targets)

	combined, numSelfLoops := d.combineSourcesTargets()
	order := argsortStable(len(combined), func(i int) int { return combined[i] })

	// sort the self-loop-filtered target column and carry each entry's
	// source type along, for the per-type bucket counts below
	tail := combined[numEdges:]
	tailOrder := argsortStable(numEdges, func(i int) int { return tail[i] })
	filteredTargets := make([]int, numEdges)
	filteredSrcTypes := make([]int, numEdges)
	for k, p := range tailOrder {
		filteredTargets[k] = tail[p]
		filteredSrcTypes[k] = srcTypes[p]
	}

	if numSelfLoops > 0 {
		order = order[:len(order)-numSelfLoops]
		filteredTargets = filteredTargets[:numEdges-numSelfLoops]
		filteredSrcTypes = filteredSrcTypes[:numEdges-numSelfLoops]
	}

	// the type of the endpoint NOT contributing position p: the target's
	// type for source-side positions, the source's for target-side
	otherTypes := make([]int, len(order))
	for k, p := range order {
		if p < numEdges {
			otherTypes[k] = tgtTypes[p]
		} else {
			otherTypes[k] = srcTypes[p-numEdges]
		}
	}
	for k := range order {
		order[k] %= numEdges
	}

	index := make(map[int]*Ragged)
	for _, typeCode := range sortedUnique(otherTypes) {
		counts := make([]int, d.numNodes)
		for i := 0; i < numEdges; i++ {
			if tgtTypes[i] == typeCode {
				counts[d.sources.Get(i)]++
			}
		}
		for k, tgt := range filteredTargets {
			if filteredSrcTypes[k] == typeCode {
				counts[tgt]++
			}
		}
		splits := splitsFrom(counts)

		flat := make([]int, 0, splits[d.numNodes])
		for k, edgeIloc := range order {
			if otherTypes[k] == typeCode {
				flat = append(flat, edgeIloc)
			}
		}

		index[typeCode] = newRagged(iloc.FromInts(iloc.WidthFor(numEdges), flat), splits)
	}

	d.bothAdjByType = index
	observeBuild("undirected_by_type", start, len(order))
}
