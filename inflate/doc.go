// Package inflate resolves templates and variables in a node chain and hands
// the result to a registered [Factory].
//
// Declarations live in defs blocks. Inside a defs block, a bare value with a
// body declares a template and a property declares a variable:
//
//	defs{
//		greeting{ "hi" }
//		Btn{ label Widget{ caption{ @{label} } } }
//	}
//
// Btn above is a template of type Widget with one formal variable, label.
// Using it as Btn{ "OK" } binds label to "OK", merges the remaining use-site
// body into the template body with [Merge], substitutes @{label}, and calls
// the Widget factory with caption{OK}.
//
// Scopes nest: a defs block inside an object's body is visible only while
// that object and its descendants are created, and shadows outer
// declarations of the same name.
package inflate
