// Package attrparam defines the typed parameter schemas behind cave
// attributes (water temperature, rock type, passage fill and the like)
// that UI layers attach to stations, sections, and components.
//
// A Param is a tagged variant: an integer range, a float range, or a
// string with an allowed-value list. A Value carries the same tag. One
// Validate routine, switching on the tag, checks any value against any
// parameter; there is no reflection and no runtime type inspection.
//
// A Definition groups the named parameters of one attribute and validates
// a whole value set at once, reporting unknown names and per-parameter
// violations as wrapped sentinel errors.
package attrparam
