package geometry

// Side controls which face of a shape an intersection test accepts,
// driving the FRONT / BACK / FRONT_AND_BACK filters of §4.1 and the
// primary-vs-shadow ray policy of §4.3.
type Side int

const (
	SideFront Side = iota
	SideBack
	SideFrontAndBack
)
