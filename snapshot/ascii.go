package snapshot

import (
	"fmt"
	"io"
	"sort"

	"github.com/hmmm42/treealign/tree"
)

// WriteASCII writes a box-drawing tree listing of b to w: a DFS from the
// selected root, children ordered by score descending, and any node never
// reached from that root (a separate component, or a truly isolated node)
// listed afterward. scoreThreshold, when positive, stubs branches instead of
// descending into them once a child's score falls below it.
func WriteASCII(w io.Writer, b *tree.Builder, scoreThreshold int) error {
	root := b.Root()
	children := b.Children()

	written := make(map[int]bool)

	if _, err := fmt.Fprintf(w, "Maximum Spanning Tree (root: node %d)\n", root); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total links: %d\n", b.LinksAdded()); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "================================================================================\n\n"); err != nil {
		return err
	}

	var writeSubtree func(nodeID int, prefix string, isLast bool, depth, component int) error
	writeSubtree = func(nodeID int, prefix string, isLast bool, depth, component int) error {
		written[nodeID] = true

		connector, branch := "", ""
		if depth > 0 {
			if isLast {
				connector, branch = "└─ ", "   "
			} else {
				connector, branch = "├─ ", "│  "
			}
		}

		var err error
		if depth == 0 {
			_, err = fmt.Fprintf(w, "%s%sNode %d [ROOT %d]\n", prefix, connector, nodeID, component)
		} else {
			_, err = fmt.Fprintf(w, "%s%sNode %d (s:%d)\n", prefix, connector, nodeID, b.Score(nodeID))
		}
		if err != nil {
			return err
		}

		kids := append([]int(nil), childrenOf(children, nodeID)...)
		sort.SliceStable(kids, func(i, j int) bool { return b.Score(kids[i]) > b.Score(kids[j]) })

		for i, childID := range kids {
			isLastChild := i == len(kids)-1
			if scoreThreshold > 0 && b.Score(childID) < scoreThreshold {
				stubConnector := "├── "
				if isLastChild {
					stubConnector = "└── "
				}
				if _, err := fmt.Fprintf(w, "%s%s%s[STUB: Node %d, score %d < threshold]\n", prefix, branch, stubConnector, childID, b.Score(childID)); err != nil {
					return err
				}
				continue
			}
			if err := writeSubtree(childID, prefix+branch, isLastChild, depth+1, component); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeSubtree(root, "", true, 0, 0); err != nil {
		return err
	}

	n := b.MaxSeenID() + 1
	if n > b.Capacity() {
		n = b.Capacity()
	}
	var unwritten []int
	for i := 0; i < n; i++ {
		if !written[i] {
			unwritten = append(unwritten, i)
		}
	}
	if len(unwritten) == 0 {
		return nil
	}

	component := 2
	for _, nodeID := range unwritten {
		if written[nodeID] {
			continue
		}
		if b.Score(nodeID) < 0 || b.Parent(nodeID) == nodeID {
			if err := writeSubtree(nodeID, "", true, 0, component); err != nil {
				return err
			}
			component++
		}
	}

	var isolated []int
	for _, nodeID := range unwritten {
		if !written[nodeID] && b.Score(nodeID) < 0 {
			isolated = append(isolated, nodeID)
		}
	}
	if len(isolated) > 0 {
		if _, err := fmt.Fprintf(w, "\n================================================================================\nISOLATED NODES (no connections): %d\n--------------------------------------------------------------------------------\n", len(isolated)); err != nil {
			return err
		}
		for _, nodeID := range isolated {
			if _, err := fmt.Fprintf(w, "Node %d\n", nodeID); err != nil {
				return err
			}
		}
	}
	return nil
}

func childrenOf(children [][]int, v int) []int {
	if v < 0 || v >= len(children) {
		return nil
	}
	return children[v]
}
