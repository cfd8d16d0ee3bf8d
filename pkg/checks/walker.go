package checks

import (
	"fmt"

	"github.com/ningg/checkstyle/pkg/javast"
)

// Walker dispatches tree nodes to the checks registered for their kind.
type Walker struct {
	hooks map[javast.Kind][]Check
}

// NewWalker creates an empty walker.
func NewWalker() *Walker {
	return &Walker{
		hooks: make(map[javast.Kind][]Check),
	}
}

// Register subscribes a check for the given kinds. A zero kinds set means
// the check's defaults. Registration fails unless
// required ⊆ kinds ⊆ acceptable holds for the check.
func (w *Walker) Register(check Check, kinds javast.KindSet) error {
	if kinds.IsEmpty() {
		kinds = check.DefaultKinds()
	}

	if !kinds.IsSubset(check.AcceptableKinds()) {
		return fmt.Errorf("%w: %s accepts %s, configured %s",
			ErrKindsNotInRange, check.Name(), check.AcceptableKinds(), kinds)
	}

	if !check.RequiredKinds().IsSubset(kinds) {
		return fmt.Errorf("%w: %s requires %s, configured %s",
			ErrMissingRequired, check.Name(), check.RequiredKinds(), kinds)
	}

	for _, kind := range kinds.Kinds() {
		w.hooks[kind] = append(w.hooks[kind], check)
	}

	return nil
}

// Walk traverses the tree in depth-first preorder, dispatching each node to
// the checks registered for its kind. Violations are stamped with the
// reporting check's name on the way to the sink.
func (w *Walker) Walk(root *javast.Node, r Reporter) {
	if root == nil {
		return
	}

	w.walk(root, r)
}

func (w *Walker) walk(n *javast.Node, r Reporter) {
	if hooks, ok := w.hooks[n.Kind]; ok {
		for _, check := range hooks {
			check.Visit(n, checkReporter{check: check.Name(), sink: r})
		}
	}

	for _, child := range n.Children() {
		w.walk(child, r)
	}
}

// checkReporter stamps the reporting check's name onto violations before
// forwarding them to the sink.
type checkReporter struct {
	check string
	sink  Reporter
}

func (r checkReporter) Report(v Violation) {
	v.Check = r.check
	r.sink.Report(v)
}
