package pipeline

import (
	"fmt"

	"github.com/sadanandam5592/orca/pkg/document"
)

// TemplateShapeError reports a mergeable template field that is not a list of
// maps. Index is the offending element, or -1 when the field itself is not a list.
type TemplateShapeError struct {
	Field string
	Kind  document.Kind
	Index int
}

func (e *TemplateShapeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("pipeline: template field %q is a %s, expected a list of maps", e.Field, e.Kind)
	}
	return fmt.Sprintf("pipeline: template field %q has a %s at index %d, expected a map", e.Field, e.Kind, e.Index)
}
