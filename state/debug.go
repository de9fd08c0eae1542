package state

import (
	"fmt"
	"strings"

	. "git.lolli.tech/lollipopkit/luacore/api"
	"git.lolli.tech/lollipopkit/luacore/binchunk"
	jsoniter "github.com/json-iterator/go"
)

var debugJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// frameAt walks the frame chain to the level'th activation record,
// counting from 0 at the top (the innermost running function) the way
// lua_getstack does. Returns nil past the bottom of the stack.
func (t *Thread) frameAt(level int) *Frame {
	f := t.frames
	for ; level > 0 && f != nil; level-- {
		f = f.prev
	}
	return f
}

// currentLine reports the source line the frame is paused at: the
// line of the instruction it just executed, or its defining line if
// it hasn't executed one yet (a freshly pushed frame, or a Go
// closure, which carries no line table at all).
func currentLine(f *Frame) int {
	if f.closure == nil || f.closure.isGo() {
		return -1
	}
	proto := f.closure.proto
	pc := f.pc - 1
	if pc >= 0 && pc < len(proto.LineInfo) {
		return int(proto.LineInfo[pc])
	}
	return int(proto.LineDefined)
}

// frameName reports the best-effort name Lua's getinfo would report
// for 'n' ("name"/"namewhat"): the closure's registered name for a Go
// builtin, or "?" for an anonymous Lua function — this implementation
// never threads the caller-side "how was this called" context real
// PUC-Lua's debug info does, which only affects namewhat, not name.
func frameName(f *Frame) string {
	if f.closure == nil {
		return "?"
	}
	if f.closure.name != "" {
		return f.closure.name
	}
	return "?"
}

// describeFrame renders one frame the way spec's traceback format
// requires: "\tsource:line: in function 'name'".
func describeFrame(f *Frame) string {
	if f.closure == nil {
		return "\t[continuation]"
	}
	if f.closure.isGo() {
		return fmt.Sprintf("\t[Go]: in function '%s'", frameName(f))
	}
	src := binchunk.ShortSource(f.closure.proto.Source)
	line := currentLine(f)
	name := frameName(f)
	if name == "?" {
		if int(f.closure.proto.LineDefined) == 0 {
			return fmt.Sprintf("\t%s:%d: in main chunk", src, line)
		}
		return fmt.Sprintf("\t%s:%d: in function <%s:%d>", src, line, src, f.closure.proto.LineDefined)
	}
	return fmt.Sprintf("\t%s:%d: in function '%s'", src, line, name)
}

// Traceback implements debug.traceback's string-building half: msg
// (if non-empty) is prefixed verbatim, followed by one line per frame
// from level down to the bottom of the stack.
func (t *Thread) Traceback(msg string, level int) string {
	var b strings.Builder
	if msg != "" {
		b.WriteString(msg)
		b.WriteString("\n")
	}
	b.WriteString("stack traceback:")
	for f := t.frameAt(level); f != nil; f = f.prev {
		b.WriteString("\n")
		b.WriteString(describeFrame(f))
		if f.flags&frameTail != 0 {
			b.WriteString("\n\t(...tail calls...)")
		}
	}
	return b.String()
}

// LocalName implements debug.getlocal's name lookup: the idx'th local
// variable (1-based) active at the frame's current pc, per the
// prototype's LocVars live-range table, mirroring luaF_getlocalname.
func (t *Thread) LocalName(level, idx int) (string, bool) {
	f := t.frameAt(level)
	if f == nil || f.closure == nil || f.closure.isGo() {
		return "", false
	}
	pc := f.pc
	n := 0
	for _, lv := range f.closure.proto.LocVars {
		if int(lv.StartPC) <= pc && pc < int(lv.EndPC) {
			n++
			if n == idx {
				return lv.VarName, true
			}
		}
	}
	return "", false
}

// GetInfoLine/GetInfoSource/GetInfoName/GetInfoWhat back debug.getinfo;
// kept as separate small accessors (rather than one struct) since the
// GoFunction registering getinfo only needs to push a handful of
// table fields, not a whole snapshot type.
func (t *Thread) GetInfoLine(level int) int {
	f := t.frameAt(level)
	if f == nil {
		return -1
	}
	return currentLine(f)
}

func (t *Thread) GetInfoSource(level int) string {
	f := t.frameAt(level)
	if f == nil {
		return "=?"
	}
	return frameSource(f)
}

func frameSource(f *Frame) string {
	if f.closure == nil || f.closure.isGo() {
		return "=[Go]"
	}
	return f.closure.proto.Source
}

func (t *Thread) GetInfoName(level int) string {
	f := t.frameAt(level)
	if f == nil {
		return "?"
	}
	return frameName(f)
}

func (t *Thread) GetInfoWhat(level int) string {
	f := t.frameAt(level)
	if f == nil {
		return ""
	}
	return frameWhat(f)
}

func frameWhat(f *Frame) string {
	if f.closure == nil {
		return "continuation"
	}
	if f.closure.isGo() {
		return "Go"
	}
	if int(f.closure.proto.LineDefined) == 0 {
		return "main"
	}
	return "Lua"
}

// frameLocalNames lists the names of every local variable live at f's
// current pc, in register order, the same live-range test LocalName
// uses for a single lookup.
func frameLocalNames(f *Frame) []string {
	if f.closure == nil || f.closure.isGo() {
		return nil
	}
	var names []string
	pc := f.pc
	for _, lv := range f.closure.proto.LocVars {
		if int(lv.StartPC) <= pc && pc < int(lv.EndPC) {
			names = append(names, lv.VarName)
		}
	}
	return names
}

func (t *Thread) GetInfoLineDefined(level int) int {
	f := t.frameAt(level)
	if f == nil || f.closure == nil || f.closure.isGo() {
		return -1
	}
	return int(f.closure.proto.LineDefined)
}

func (t *Thread) GetInfoNParams(level int) int {
	f := t.frameAt(level)
	if f == nil || f.closure == nil || f.closure.isGo() {
		return 0
	}
	return int(f.closure.proto.NumParams)
}

// FrameSnapshot is one activation record's worth of the structured
// dump Snapshot produces: the same fields GetInfo* expose one at a
// time, plus the live local and upvalue names, for hosts that want a
// full stack capture rather than a level-by-level walk.
type FrameSnapshot struct {
	Source   string   `json:"source"`
	Line     int      `json:"line"`
	Name     string   `json:"name"`
	What     string   `json:"what"`
	Locals   []string `json:"locals,omitempty"`
	Upvalues []string `json:"upvalues,omitempty"`
}

// Snapshot is a point-in-time capture of a Thread's entire frame
// stack, top first, marshaled through jsoniter (the same library
// binchunk's JSON chunk format uses) so a host can store or ship it as
// structured data instead of parsing the text Traceback produces.
type Snapshot struct {
	Frames []FrameSnapshot `json:"frames"`
}

// Snapshot walks the live frame chain into a Snapshot. Intended for
// host-side tooling (a crash reporter, a remote debugger) that wants
// structured frame data rather than the textual Traceback.
func (t *Thread) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{}
	for f := t.frames; f != nil; f = f.prev {
		fs := FrameSnapshot{
			Source: frameSource(f),
			Line:   currentLine(f),
			Name:   frameName(f),
			What:   frameWhat(f),
		}
		if f.closure != nil && !f.closure.isGo() {
			fs.Locals = frameLocalNames(f)
			fs.Upvalues = f.closure.proto.UpvalueNames
		}
		snap.Frames = append(snap.Frames, fs)
	}
	return snap, nil
}

// SetHook installs the hook a script registers via debug.sethook: f
// runs with mask bits (HookCall|HookReturn|HookLine|HookCount) and,
// for HookCount, every count instructions. Actual firing happens in
// Thread.drive's dispatch loop (thread.go), which only pays the mask
// check's cost when a hook is actually installed.
func (t *Thread) SetHook(f GoFunction, mask byte, count int) {
	t.hookFn = f
	t.hookMask = mask
	t.hookCnt = count
	t.hookLeft = count
	t.hookLine = -1
}

func (t *Thread) GetHook() (GoFunction, byte, int) {
	return t.hookFn, t.hookMask, t.hookCnt
}

// stepHooks is drive's per-instruction check for the line and count
// hooks: HookLine fires once per transition to a new source line,
// HookCount every hookCnt instructions (hookCnt <= 0 disables it).
func (t *Thread) stepHooks(f *Frame) {
	if t.hookMask&HookCount != 0 && t.hookCnt > 0 {
		t.hookLeft--
		if t.hookLeft <= 0 {
			t.hookLeft = t.hookCnt
			t.fireHook(HookCount, "count", -1)
		}
	}
	if t.hookMask&HookLine != 0 {
		line := -1
		if f.pc < len(f.closure.proto.LineInfo) {
			line = int(f.closure.proto.LineInfo[f.pc])
		}
		if line >= 0 && line != t.hookLine {
			t.hookLine = line
			t.fireHook(HookLine, "line", line)
		}
	}
}

// fireHook invokes the installed hook, if any, for the given event
// ("call", "return", "line", "count"). debug.sethook's registered
// wrapper may itself call back into a Lua hook function; it drives
// that nested call synchronously to completion via runUntilReturnTo
// rather than installing a continuation, the same pattern
// metamethod.go's callMetaFn uses. A Lua hook is never expected to
// yield across this boundary, so the simpler synchronous recursion is
// enough here.
func (t *Thread) fireHook(bit byte, event string, line int) {
	if t.hookFn == nil || t.hookMask&bit == 0 || t.inHook {
		return
	}
	t.inHook = true
	defer func() { t.inHook = false }()

	if f := t.frames; f != nil {
		f.flags |= frameHooked
	}

	caller := t.frames
	args := []any{t.ls.intern(event)}
	if line >= 0 {
		args = append(args, float64(line))
	}
	t.callClosure(newGoClosure(t.hookFn, 0), args, 0)
	if t.frames != caller {
		t.runUntilReturnTo(caller)
	}
}
