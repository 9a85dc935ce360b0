// SPDX-License-Identifier: MPL-2.0

// Package fetch implements loader.Fetcher: it downloads a module artifact over
// a Transport, evaluates it with an Evaluator picked by file extension, and
// reports the module's self-declared name and exports back to the loader.
//
// A ".cue" artifact declares itself as data:
//
//	module: "widget"
//	exports: {
//		foo: 42
//		util: format: "%s"
//	}
//
// A ".sh" artifact is a POSIX shell script run in an in-process interpreter.
// It declares exports with "provide <path> <value>" and names itself with
// "loaded <name>":
//
//	provide foo 42
//	provide util.format '%s'
//	loaded widget
//
// Other external commands are refused and files cannot be opened.
package fetch
