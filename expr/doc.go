// Package expr implements the single-variable expression language used by the plotter.
//
// Source text is tokenized, parsed by a recursive-descent parser into a small AST, and
// evaluated with the variable x bound. Only numeric literals, x, a fixed set of named
// constants, the arithmetic operators + - * / % ^ (also **), parentheses and a whitelist of
// math functions are accepted.
package expr
