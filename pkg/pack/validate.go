package pack

import (
	"github.com/matzehuels/packnav/pkg/errors"
)

// Validate checks that the tree rooted at n can be rendered: every node has
// a name and no node appears twice.
func Validate(n *Node) error {
	if n == nil {
		return errors.New(errors.ErrCodeInvalidTree, "tree is empty")
	}
	seen := make(map[*Node]bool)
	var check func(m *Node, path string) error
	check = func(m *Node, path string) error {
		if m == nil {
			return errors.New(errors.ErrCodeInvalidTree, "%s: nil child", path)
		}
		if seen[m] {
			return errors.New(errors.ErrCodeInvalidTree, "%s: node %q appears more than once", path, m.Name)
		}
		seen[m] = true
		if m.Name == "" {
			return errors.New(errors.ErrCodeInvalidTree, "%s: node has no name", path)
		}
		for _, c := range m.Children {
			if err := check(c, path+"/"+m.Name); err != nil {
				return err
			}
		}
		return nil
	}
	return check(n, "tree")
}
