// bag.go
//
// This file contains the logic for the bag of unplaced tokens: type
// counting and the generation of the distinct orderings in which the
// bag can be committed to the placement queue.

package lasermaze

// countToPlace returns the number of bag tokens of the given type
func (b *Board) countToPlace(kind TokenType) int {
	count := 0
	for _, token := range b.ToPlace {
		if token.Kind == kind {
			count++
		}
	}
	return count
}

// countMustLightToPlace returns the number of bag tokens flagged
// must-light
func (b *Board) countMustLightToPlace() int {
	count := 0
	for _, token := range b.ToPlace {
		if token.MustLight {
			count++
		}
	}
	return count
}

// bagCounts is the type multiset of a bag, split into the five
// categories that can occur there. Cell blockers are never in the bag
// (validation rejects them), and the laser has been extracted before
// this point, so these five are exhaustive.
type bagCounts struct {
	mustLightTargets int
	freeTargets      int
	checkpoints      int
	doubleMirrors    int
	beamSplitters    int
}

func (bc bagCounts) empty() bool {
	return bc.mustLightTargets == 0 && bc.freeTargets == 0 &&
		bc.checkpoints == 0 && bc.doubleMirrors == 0 && bc.beamSplitters == 0
}

func (bc bagCounts) total() int {
	return bc.mustLightTargets + bc.freeTargets + bc.checkpoints +
		bc.doubleMirrors + bc.beamSplitters
}

// generateQueueBranches produces one child per distinct ordering of
// the bag's type multiset, with the ordering moved into the placement
// queue. Same-type tokens are interchangeable, so the enumeration
// never materializes duplicate orderings: for counts n1..n5 it yields
// (n1+..+n5)!/(n1!..n5!) children. The worst legal bag (5 targets,
// 1 checkpoint, 1 double mirror, 2 splitters) gives 9!/(5!2!) = 1512.
func (b *Board) generateQueueBranches() []*Board {
	mustLight := b.countMustLightToPlace()
	counts := bagCounts{
		mustLightTargets: mustLight,
		freeTargets:      b.countToPlace(TargetMirror) - mustLight,
		checkpoints:      b.countToPlace(Checkpoint),
		doubleMirrors:    b.countToPlace(DoubleMirror),
		beamSplitters:    b.countToPlace(BeamSplitter),
	}

	var orderings [][]*Token
	appendOrderings(counts, nil, &orderings)

	result := make([]*Board, 0, len(orderings))
	for _, ordering := range orderings {
		node := b.Clone()
		node.ToPlace = nil
		node.Queue = ordering
		result = append(result, node)
	}
	return result
}

// appendOrderings recursively builds every distinct ordering of the
// given multiset, appending completed orderings to out
func appendOrderings(counts bagCounts, current []*Token, out *[][]*Token) {
	if counts.empty() {
		ordering := make([]*Token, len(current))
		copy(ordering, current)
		*out = append(*out, ordering)
		return
	}
	if counts.mustLightTargets > 0 {
		next := counts
		next.mustLightTargets--
		appendOrderings(next, append(current, NewToken(TargetMirror, nil, true)), out)
	}
	if counts.freeTargets > 0 {
		next := counts
		next.freeTargets--
		appendOrderings(next, append(current, NewToken(TargetMirror, nil, false)), out)
	}
	if counts.checkpoints > 0 {
		next := counts
		next.checkpoints--
		appendOrderings(next, append(current, NewToken(Checkpoint, nil, false)), out)
	}
	if counts.doubleMirrors > 0 {
		next := counts
		next.doubleMirrors--
		appendOrderings(next, append(current, NewToken(DoubleMirror, nil, false)), out)
	}
	if counts.beamSplitters > 0 {
		next := counts
		next.beamSplitters--
		appendOrderings(next, append(current, NewToken(BeamSplitter, nil, false)), out)
	}
}
