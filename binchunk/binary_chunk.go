// Package binchunk defines the compiled-chunk wire format: Prototype,
// the immutable per-function compiled form spec §3 describes, and its
// two serializations — a binary LUAC_HEADER-style dump (spec §6) and
// a secondary JSON dump used by the debug subsystem (SPEC_FULL §3).
package binchunk

import (
	"bytes"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Lua 5.2 LUAC_HEADER fields. The sizes are probed values: a chunk
// dumped on one size configuration refuses to load on a mismatched
// one, the way PUC-Lua's lundump.c checks them.
const (
	Signature   = "\x1bLuac"
	LuaVersion  = 0x52 // Lua 5.2, major*16+minor
	LuacFormat  = 0
	LuacData    = "\x19\x93\r\n\x1a\n"
	CIntSize    = 4
	CSizeTSize  = 8
	InstrSize   = 4
	IntegerSize = 8
	NumberSize  = 8
	LuacInt     = 0x5678
	LuacNum     = 370.5
)

const (
	TagNil      = 0x00
	TagBoolean  = 0x01
	TagNumber   = 0x03
	TagInteger  = 0x13
	TagShortStr = 0x04
	TagLongStr  = 0x14
)

var (
	ErrMismatchedHash = errors.New("binchunk: source hash does not match compiled chunk")
	ErrBadSignature   = errors.New("binchunk: not a precompiled chunk")
	ErrBadVersion     = errors.New("binchunk: version mismatch")
	ErrBadFormat      = errors.New("binchunk: incompatible chunk format")
	ErrTruncated      = errors.New("binchunk: truncated chunk")
)

const MismatchVersionPrefix = "binchunk: version mismatch"

// Prototype is the immutable compiled form of one Lua function body:
// constants, code, child prototypes and the debug tables needed for
// traceback/getlocal, per spec §3.
type Prototype struct {
	Source          string       `json:"s"`
	LineDefined     uint32       `json:"ld"`
	LastLineDefined uint32       `json:"lld"`
	NumParams       byte         `json:"np"`
	IsVararg        byte         `json:"iv"`
	MaxStackSize    byte         `json:"ms"`
	Code            []uint32     `json:"c"`
	Constants       []any        `json:"cs"`
	Upvalues        []Upvalue    `json:"us"`
	Protos          []*Prototype `json:"ps"`
	LineInfo        []uint32     `json:"li"`
	ColumnInfo      []uint32     `json:"coli"`
	LocVars         []LocVar     `json:"lvs"`
	UpvalueNames    []string     `json:"uns"`
}

// Upvalue describes how a closure's Nth upvalue is bound: either to a
// register of the immediately enclosing function (Instack) or to that
// function's own Nth upvalue.
type Upvalue struct {
	Instack byte `json:"is"`
	Idx     byte `json:"idx"`
	Name    string
}

// LocVar names a local variable's live range, for debug.getlocal and
// tracebacks.
type LocVar struct {
	VarName string `json:"vn"`
	StartPC uint32 `json:"spc"`
	EndPC   uint32 `json:"epc"`
}

// ShortSource truncates Source to the 60-byte, ellipsis-bearing form
// spec §6 requires for error messages and tracebacks.
func ShortSource(source string) string {
	const limit = 60
	switch {
	case len(source) == 0:
		return "?"
	case source[0] == '=':
		s := source[1:]
		if len(s) > limit {
			return s[:limit-3] + "..."
		}
		return s
	case source[0] == '@':
		s := source[1:]
		if len(s) <= limit {
			return s
		}
		return "..." + s[len(s)-(limit-3):]
	default:
		firstLine := source
		if nl := bytes.IndexByte([]byte(source), '\n'); nl >= 0 {
			firstLine = source[:nl]
		}
		if len(firstLine) <= limit-15 {
			return fmt.Sprintf("[string \"%s\"]", firstLine)
		}
		return fmt.Sprintf("[string \"%s...\"]", firstLine[:limit-15])
	}
}
