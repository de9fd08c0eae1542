// Package compiler is the black-box source-to-bytecode compiler spec
// §1 treats as an out-of-scope collaborator: given a byte chunk and a
// chunk name it returns a Prototype, or a compile error for the host
// to report — never a Lua error, per spec §7.
package compiler

import (
	"fmt"

	"git.lolli.tech/lollipopkit/luacore/binchunk"
	"git.lolli.tech/lollipopkit/luacore/compiler/codegen"
	"git.lolli.tech/lollipopkit/luacore/compiler/parser"
)

// Compile parses and generates bytecode for chunk. The parser's
// recursive-descent panics on malformed input are recovered here and
// turned into a plain error, matching the (nil, msg) contract Load
// uses for compile errors instead of raising a Lua error.
func Compile(chunk, chunkName string) (proto *binchunk.Prototype, err error) {
	defer func() {
		if r := recover(); r != nil {
			proto = nil
			err = fmt.Errorf("%s: %v", chunkName, r)
		}
	}()

	ast := parser.Parse(chunk, chunkName)
	proto = codegen.GenProto(ast)
	setSource(proto, chunkName)
	return proto, nil
}

func setSource(proto *binchunk.Prototype, chunkName string) {
	proto.Source = chunkName
	for _, f := range proto.Protos {
		setSource(f, chunkName)
	}
}
