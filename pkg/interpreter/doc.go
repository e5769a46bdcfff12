// Package interpreter evaluates IMP programs with big-step semantics.
// Arithmetic and boolean expressions read an environment; commands take
// ownership of one and return its successor. While loops run as an explicit
// loop, so long-running programs do not grow the call stack. Evaluation
// failures such as unbound variables are returned as errors from package
// runtime rather than aborting the process.
package interpreter
