/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package types holds the small constants shared across every package in
// the VM core: access-flag bits, descriptor tag characters, and the
// sentinel indices that make "absent" uniformly representable.
package types

// Access flag bits, as they appear in the access_flags field of a class,
// field, or method (JVMS §4.1).
const (
	AccPublic     = 0x0001
	AccPrivate    = 0x0002
	AccProtected  = 0x0004
	AccStatic     = 0x0008
	AccFinal      = 0x0010
	AccSuper      = 0x0020
	AccVolatile   = 0x0040
	AccTransient  = 0x0080
	AccInterface  = 0x0200
	AccAbstract   = 0x0400
	AccSynthetic  = 0x1000
	AccAnnotation = 0x2000
	AccEnum       = 0x4000
)

// StringPoolStringIndex is the sentinel class-name index meaning
// "java/lang/Object" (a super_class index of 0).
const StringPoolStringIndex = 0

// InvalidStringIndex flags a name that failed to resolve.
const InvalidStringIndex = ^uint32(0)

// NullReference is the heap id that always denotes the null reference.
const NullReference = 0

// Descriptor tag characters for the nine Value-cell variants.
const (
	Boolean   = 'Z'
	Byte      = 'B'
	Short     = 'S'
	Int       = 'I'
	Long      = 'J'
	Float     = 'F'
	Double    = 'D'
	Char      = 'C'
	Reference = 'A'
)

// RefArray and Array are the descriptor prefixes for object-array and
// primitive-array references, respectively.
const (
	RefArray = "[L"
	Array    = "["
)

// States of a loaded class's <clinit>. Neither the registry nor the
// interpreter records these states or runs <clinit>.
const (
	NoClinit = iota
	ClInitNotRun
	ClInitInProgress
	ClInitRun
)
