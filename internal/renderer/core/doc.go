// Package core provides the value types shared by the renderer and its backends.
// This package breaks import cycles between renderer and backend.
//
// All types are small comparable values: two cells are equal exactly when
// their grapheme, colors and attribute sets are equal, so the == operator is
// the structural equality the renderer's diff relies on.
package core
