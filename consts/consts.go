package consts

// Debug gates verbose compiler/interpreter tracing (AST dumps, opcode
// traces, coroutine transition logs). Off by default; a host embedding
// the interpreter for sandboxed scripts has no business writing
// *.ast.json files next to user chunks in production.
var Debug = false

const Version = "0.1.0"
