// Package node implements the tree representation shared by every stage of
// document inflation.
//
// A document is a chain of sibling nodes. Each [Node] carries a string value
// and, optionally, an owned chain of children written inside braces:
//
//	defs{
//		Btn{ label Widget{ text{ @{label} } } }
//	}
//	Container{
//		Btn{ "OK" }
//	}
//
// A node whose value begins with an ASCII lowercase letter is a property
// (defs, text, label). Any other value is a bare value: a type or template
// name, the reference marker "@", or a literal.
//
// Besides the native text syntax, chains can be decoded from JSON with
// comments, YAML, and CBOR, and encoded back to each of those. Top-level
// include{path} nodes are replaced by the chain of the named file with
// [ResolveIncludes].
package node
