package mutagens

import (
	m "gooze.dev/pkg/fuzzmut/internal/model"
)

// maxPathRepeats bounds the nesting depth RepeatPathMutation can draw.
const maxPathRepeats = 1024

// TreeMutator is the signature shared by the tree mutations.
type TreeMutator func(data []byte, rng m.RandomSource) ([]byte, error)

// DeleteNode removes one node, chosen uniformly in pre-order, with its
// subtree. Choosing the root yields an empty result.
func DeleteNode(data []byte, rng m.RandomSource) ([]byte, error) {
	tree, err := ParseTree(data)
	if err != nil {
		return nil, err
	}

	nodes := tree.PreOrder()
	target := nodes[rng.Uniform(0, len(nodes)-1)]

	if err := tree.Delete(target); err != nil {
		return nil, err
	}

	return terminate(tree.Serialize()), nil
}

// ReplaceNode overwrites the label of one node with the label of another.
// Source and target are drawn independently and may coincide.
func ReplaceNode(data []byte, rng m.RandomSource) ([]byte, error) {
	tree, err := ParseTree(data)
	if err != nil {
		return nil, err
	}

	nodes := tree.PreOrder()
	source := nodes[rng.Uniform(0, len(nodes)-1)]
	target := nodes[rng.Uniform(0, len(nodes)-1)]

	tree.SetLabel(target, tree.Label(source))

	return terminate(tree.Serialize()), nil
}

// DuplicateNode copies a non-root node's subtree under a randomly chosen
// node of the tree.
func DuplicateNode(data []byte, rng m.RandomSource) ([]byte, error) {
	tree, err := ParseTree(data)
	if err != nil {
		return nil, err
	}

	nodes := tree.PreOrder()
	if len(nodes) < 2 {
		return nil, m.NewUsageError("tree needs at least 2 nodes, got %d", len(nodes))
	}

	// Pre-order puts the root first.
	nonRoot := nodes[1:]
	node := nonRoot[rng.Uniform(0, len(nonRoot)-1)]
	parent := nodes[rng.Uniform(0, len(nodes)-1)]

	if _, err := tree.DuplicateSubtree(node, parent); err != nil {
		return nil, err
	}

	return terminate(tree.Serialize()), nil
}

// RepeatPath replaces child slot of parent with a deep copy of parent, then
// repeats the replacement inside each inserted copy, numReps times in total.
// Every copy is taken from parent as it was before the first replacement.
func RepeatPath(tree *Tree, parent NodeID, slot, numReps int) error {
	if !tree.Valid(parent) {
		return m.NewIndexOutOfRangeError("node %d is not a live node", parent)
	}

	if slot < 0 || slot >= len(tree.Children(parent)) {
		return m.NewIndexOutOfRangeError("child slot %d outside [0, %d)", slot, len(tree.Children(parent)))
	}

	if numReps <= 0 {
		return nil
	}

	snap := tree.snapshot(parent)
	current := parent

	for range numReps {
		current = tree.replaceChild(current, slot, snap)
	}

	return nil
}

// RepeatPathMutation draws a repetition count, a parent with children and a
// child slot, then applies RepeatPath.
func RepeatPathMutation(data []byte, rng m.RandomSource) ([]byte, error) {
	tree, err := ParseTree(data)
	if err != nil {
		return nil, err
	}

	numReps := rng.Uniform(0, maxPathRepeats)

	var parents []NodeID
	for _, id := range tree.PreOrder() {
		if len(tree.Children(id)) > 0 {
			parents = append(parents, id)
		}
	}

	if len(parents) == 0 {
		return nil, m.NewUsageError("tree has no node with children")
	}

	parent := parents[rng.Uniform(0, len(parents)-1)]
	slot := rng.Uniform(0, len(tree.Children(parent))-1)

	if err := RepeatPath(tree, parent, slot, numReps); err != nil {
		return nil, err
	}

	return terminate(tree.Serialize()), nil
}
