// Package errs defines the sentinel errors shared across the nbt packages.
//
// All errors returned by the codec wrap one of these sentinels, so callers can
// classify failures with errors.Is regardless of the contextual message added
// along the way.
package errs

import "errors"

// Codec errors.
var (
	// ErrInternal indicates a violated precondition, such as a nil input or an
	// impossible internal state.
	ErrInternal = errors.New("internal error")

	// ErrUnexpectedEndOfInput indicates a primitive read would cross the end
	// of the input buffer.
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")

	// ErrLeftoverData indicates the top-level parse succeeded but bytes remain
	// after the outermost tag. The decoded tree is still returned alongside
	// this error.
	ErrLeftoverData = errors.New("leftover data after top-level tag")

	// ErrBadTag indicates a tag byte outside 1..12 where a kind was expected.
	ErrBadTag = errors.New("invalid tag kind")

	// ErrBadKey indicates a tag name could not be read or MUTF-8 decoded.
	ErrBadKey = errors.New("invalid tag name")

	// ErrBadList indicates a list declared element kind End with a non-zero
	// length.
	ErrBadList = errors.New("non-empty list with End element kind")

	// ErrBadMca indicates the region header or chunk framing is malformed.
	ErrBadMca = errors.New("malformed region file")

	// ErrBadUTF8 indicates MUTF-8/UTF-8 transcoding hit an invalid sequence.
	ErrBadUTF8 = errors.New("invalid modified UTF-8 sequence")

	// ErrDecompress indicates the underlying compressor returned an error.
	ErrDecompress = errors.New("decompression failed")

	// ErrCancelled indicates the operation observed a cancelled context.
	ErrCancelled = errors.New("operation cancelled")
)

// Tag tree errors.
var (
	// ErrWrongKind indicates a structural operation on a node whose kind does
	// not support it, such as inserting a child into a Byte tag.
	ErrWrongKind = errors.New("operation not supported for tag kind")

	// ErrListTypeMismatch indicates an insert into a non-empty list whose
	// element kind differs from the new child's kind.
	ErrListTypeMismatch = errors.New("list element kind mismatch")

	// ErrOutOfRange indicates a child index at or beyond the child count.
	ErrOutOfRange = errors.New("child index out of range")

	// ErrListChildRename indicates a rename of a list element; list children
	// carry no name on the wire.
	ErrListChildRename = errors.New("cannot rename a list element")

	// ErrHasParent indicates an insert of a node that is already attached to
	// a parent.
	ErrHasParent = errors.New("node already has a parent")
)
