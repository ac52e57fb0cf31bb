package types

// Kind classifies what a finding would remove from a scene file.
type Kind string

const (
	// KindSpecularLine is a single line carrying a deprecated
	// "specular ..._specular_file.r" texture reference.
	KindSpecularLine Kind = "specular-line"
	// KindImageBlock is a whole image { ... } block whose name attribute
	// references a deprecated _specular_file texture.
	KindImageBlock Kind = "image-block"
	// KindTruncatedBlock is an image block opened but never closed before
	// end of file. The filter drops such content; scan reports it so the
	// loss is visible up front.
	KindTruncatedBlock Kind = "truncated-block"
)

// Finding describes content the filter removes (or, for truncated blocks,
// silently drops) from a scene file, located by path and 1-based line.
// For blocks, Line is the line of the opening image statement and Lines is
// the number of lines the block spans.
type Finding struct {
	Path  string `json:"path"`
	Line  int    `json:"line"`
	Kind  Kind   `json:"kind"`
	Name  string `json:"name,omitempty"` // texture/node name when one could be extracted
	Lines int    `json:"lines,omitempty"`
}
