package descriptor

import "docgen/internal/model"

// Element holds what every descriptor has in common.
type Element struct {
	Name        string         // short name, e.g. "find" or "id"
	FQSEN       string         // fully qualified structural element name
	Summary     string         // first sentence of the doc comment
	Description string         // remainder of the doc comment
	Location    model.Location // where the element is declared
}

// GetName returns the element name.
func (e *Element) GetName() string {
	return e.Name
}

// GetFQSEN returns the fully qualified name, falling back to the short name.
func (e *Element) GetFQSEN() string {
	if e.FQSEN == "" {
		return e.Name
	}
	return e.FQSEN
}

// GetSummary returns the summary line
func (e *Element) GetSummary() string {
	return e.Summary
}

// GetDescription returns the long description
func (e *Element) GetDescription() string {
	return e.Description
}
