package navigator

import (
	"strings"

	"github.com/matzehuels/packnav/pkg/errors"
	"github.com/matzehuels/packnav/pkg/pack"
)

// PlaceholderName is the name of a fresh creation placeholder.
const PlaceholderName = "+"

// Creating returns the placeholder whose affordance is showing, or nil.
func (n *Navigator) Creating() *pack.Node { return n.creating }

// ConfirmCreate turns the pending placeholder into a regular node called
// name and appends a new placeholder next to it.
func (n *Navigator) ConfirmCreate(name string) error {
	ph := n.creating
	if ph == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no node creation in progress")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "node name must not be empty")
	}
	if n.nodes[ph.ID] != ph {
		n.cancelCreate()
		return errors.New(errors.ErrCodeStale, "placeholder is no longer on a live level")
	}
	parent := ph.Parent
	if parent == nil {
		n.cancelCreate()
		return errors.New(errors.ErrCodeInvalidTree, "placeholder has no parent to add a sibling to")
	}
	n.cancelCreate()

	ph.Name = name
	ph.SetTags()
	fresh := &pack.Node{Name: PlaceholderName}
	fresh.SetTags(pack.TagStatic, pack.TagCreateNew)
	parent.AddChild(fresh)
	n.register(n.owner[ph.ID], fresh)

	n.log.Info("node created", "name", name, "parent", parent.Name)
	n.Render()
	return nil
}

// CancelCreate hides the affordance without changing the tree.
func (n *Navigator) CancelCreate() {
	n.cancelCreate()
}

func (n *Navigator) cancelCreate() {
	if n.creating == nil {
		return
	}
	n.creating = nil
	if n.affordance != nil {
		n.affordance.Hide()
	}
}
