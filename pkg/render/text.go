package render

import (
	"fmt"
	"io"

	"github.com/matzehuels/deptree/pkg/deptree"
)

// Text writes the canonical text rendering of a tree to w, one declared
// relation per line in declaration order. The bytes written are exactly
// those of [deptree.Tree.String].
func Text[K comparable](w io.Writer, t *deptree.Tree[K]) error {
	if _, err := io.WriteString(w, t.String()); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}
