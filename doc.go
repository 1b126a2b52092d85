// Package jsonfmt re-indents JSON documents in a stream.
//
// The input is never loaded into memory as a whole, nor decoded into a tree.
// Bytes are read through a refillable buffer and written out as soon as their
// place in the output is known, so memory usage only depends on the nesting
// depth of the document.  Strings and numbers are copied byte for byte, with
// no unescaping or re-encoding.
//
// Two algorithms are available:
//
// - Format follows the JSON grammar with an explicit stack of states and
// reports a *SyntaxError on invalid input.
//
// - FormatFast reacts to brackets, commas and colons as it sees them.  It is
// faster but does not check that the input is valid JSON, and may then
// produce invalid output.
//
// Both produce identical output for valid JSON.  For example
//
//	{"a": [1, 2], "b": {}}
//
// formatted with an indent width of 2 becomes
//
//	{
//	  "a": [
//	    1,
//	    2
//	  ],
//	  "b": {
//	  }
//	}
//
// Note that empty objects and arrays are spread over two lines.
//
// The command line tool is in the directory cmd/jsonfmt.  You can install it
// with:
//
//	go install github.com/arnodel/jsonfmt/cmd/jsonfmt
package jsonfmt
