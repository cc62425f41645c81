package analyzer

import "sort"

// Group is the equivalence class of all blocks sharing one fingerprint across
// at least two distinct file:startLine locations. Category and Suggestion are
// filled in by the classifier after grouping.
type Group struct {
	Fingerprint string
	Blocks      []Block // insertion order = discovery order
	Count       int     // member count
	Lines       int     // line count, taken from the first member
	Tokens      int     // token count, taken from the first member
	Impact      int     // Count * Lines
	Category    string
	Suggestion  string
}

// GroupBlocks partitions blocks by fingerprint, drops partitions that do not
// span two distinct locations or whose fingerprint is ignored, ranks the rest
// by impact, and suppresses groups shadowed by overlapping higher-ranked ones.
//
// Ranking is a stable sort over formation order, so equal-impact groups keep
// the order in which their fingerprints were first seen. That order reflects
// file-scan order and is the sole tie-break; it makes reports reproducible
// byte for byte.
func GroupBlocks(blocks []Block, ignored map[string]bool) []*Group {
	index := make(map[string]*Group)
	var formed []*Group

	for _, b := range blocks {
		g, ok := index[b.Fingerprint]
		if !ok {
			g = &Group{Fingerprint: b.Fingerprint}
			index[b.Fingerprint] = g
			formed = append(formed, g)
		}
		g.Blocks = append(g.Blocks, b)
	}

	var groups []*Group
	for _, g := range formed {
		if ignored[g.Fingerprint] {
			continue
		}
		if distinctLocations(g.Blocks) < 2 {
			continue
		}
		g.Count = len(g.Blocks)
		g.Lines = g.Blocks[0].Size
		g.Tokens = g.Blocks[0].Tokens
		g.Impact = g.Count * g.Lines
		groups = append(groups, g)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Impact > groups[j].Impact
	})

	return suppressOverlaps(groups)
}

// distinctLocations counts unique file:startLine pairs among the blocks.
func distinctLocations(blocks []Block) int {
	type loc struct {
		file string
		line int
	}
	seen := make(map[loc]struct{}, len(blocks))
	for _, b := range blocks {
		seen[loc{b.File, b.StartLine}] = struct{}{}
	}
	return len(seen)
}

type span struct {
	start, end int
}

// suppressOverlaps walks the ranked groups and drops any group where fewer
// than two members fall outside line ranges already claimed by kept groups in
// the same files. Off-by-one shadows of a longer duplicate collapse into the
// leading group this way. Groups are dropped whole and never re-scored, so
// the impact ordering of the survivors is untouched.
func suppressOverlaps(groups []*Group) []*Group {
	claimed := make(map[string][]span)
	var kept []*Group

	for _, g := range groups {
		free := 0
		for _, b := range g.Blocks {
			if !overlapsAny(claimed[b.File], b.StartLine, b.EndLine) {
				free++
			}
		}
		if free < 2 {
			continue
		}
		kept = append(kept, g)
		for _, b := range g.Blocks {
			claimed[b.File] = append(claimed[b.File], span{b.StartLine, b.EndLine})
		}
	}
	return kept
}

func overlapsAny(spans []span, start, end int) bool {
	for _, s := range spans {
		if start <= s.end && end >= s.start {
			return true
		}
	}
	return false
}
