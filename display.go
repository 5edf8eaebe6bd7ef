package chatmark

// Display renders markdown source to text for a surface of the given
// width, such as a terminal. It is the boundary between the pipeline and
// a concrete widget layer.
type Display interface {
	Display(source string, width int) (string, error)
}
