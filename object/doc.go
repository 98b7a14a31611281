// Package object implements the runtime's object model: the tagged Value
// representation (§3.1), the object header and slot/bytes layout (§3.2),
// type descriptors (§3.3), and the built-in types the interpreter touches
// directly (§3.4).
//
// A Value is either a small integer, stored inline, or a reference to a
// Header allocated by gcheap. Go cannot safely mask a live pointer's low
// bits the way a tagged-pointer scheme masks a machine word — doing so
// would hide the pointer from Go's own collector between the mask and
// unmask (see DESIGN.md, "tagged pointer representation"). Value instead
// carries the discriminant as a struct tag, and all addressing,
// forwarding, and remembered-set machinery operates on *Header identity
// rather than on raw integers.
package object
