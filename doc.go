/*
Package exin implements the EXIN interpreter: a small, dynamically-typed,
indentation-sensitive scripting language evaluated by a tree-walking
interpreter.

A program is one module, loaded by internal/source, tokenized by
internal/scanner, parsed into an AST by internal/parser, statically checked
once by internal/check, and then evaluated by internal/eval against an
explicit operand stack. Identifiers resolve against only two scope levels,
the current function's local frame and the program's global frame — there
is no lexical nesting beyond that.

Values are seven-kind, reference-counted objects (internal/object): CHAR,
INT, FLOAT, STR, LIST, LISTNODE and NONE. Errors are one of ten fatal kinds
(internal/diag), each carrying the process exit code spec.md assigns it;
there is no recovery path once the evaluator raises one.

Interp ties the pipeline together behind a functional-options constructor,
the way the teacher's VM does; cmd/exin is the command-line front end.
*/
package exin
