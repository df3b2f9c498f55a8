package node

import "github.com/ardnew/inflate/pkg"

var (
	// ErrParse is returned when native document text is malformed.
	ErrParse = pkg.NewError("parse error")
	// ErrReadInput is returned when document input cannot be read.
	ErrReadInput = pkg.NewError("read input")
	// ErrDecode is returned when JSON, YAML, or CBOR input cannot be decoded.
	ErrDecode = pkg.NewError("decode")
	// ErrEncode is returned when a chain cannot be encoded.
	ErrEncode = pkg.NewError("encode")
	// ErrIncludeCycle is returned when a file includes itself, directly or
	// through other files.
	ErrIncludeCycle = pkg.NewError("include cycle")
	// ErrIncludeNotFound is returned when an included file exists in neither
	// the including file's directory nor any search directory.
	ErrIncludeNotFound = pkg.NewError("include not found")
	// ErrMalformedInclude is returned when an include node does not name
	// exactly one file.
	ErrMalformedInclude = pkg.NewError("malformed include")
)
