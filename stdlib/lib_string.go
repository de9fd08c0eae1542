package stdlib

import (
	"strings"

	. "git.lolli.tech/lollipopkit/luacore/api"
)

var strFuncs = FuncReg{
	"len":     strLen,
	"rep":     strRep,
	"reverse": strReverse,
	"lower":   strLower,
	"upper":   strUpper,
	"sub":     strSub,
	"byte":    strByte,
	"char":    strChar,
	"format":  strFormatFn,
}

// lua-5.2's lstrlib.c#luaopen_string, trimmed to spec.md's scope
// (string patterns/string.pack stay out per its Non-goals).
func OpenStringLib(ls State) int {
	ls.NewLib(strFuncs)
	return 1
}

// string.len (s)
// http://www.lua.org/manual/5.2/manual.html#pdf-string.len
func strLen(ls State) int {
	s := ls.CheckString(1)
	ls.PushInteger(int64(len(s)))
	return 1
}

// string.rep (s, n [, sep])
// http://www.lua.org/manual/5.2/manual.html#pdf-string.rep
func strRep(ls State) int {
	s := ls.CheckString(1)
	n := ls.CheckInteger(2)
	sep := ls.OptString(3, "")

	switch {
	case n <= 0:
		ls.PushString("")
	case n == 1:
		ls.PushString(s)
	default:
		a := make([]string, n)
		for i := range a {
			a[i] = s
		}
		ls.PushString(strings.Join(a, sep))
	}
	return 1
}

// string.reverse (s)
// http://www.lua.org/manual/5.2/manual.html#pdf-string.reverse
func strReverse(ls State) int {
	s := ls.CheckString(1)
	n := len(s)
	a := make([]byte, n)
	for i := 0; i < n; i++ {
		a[i] = s[n-1-i]
	}
	ls.PushString(string(a))
	return 1
}

// string.lower (s)
// http://www.lua.org/manual/5.2/manual.html#pdf-string.lower
func strLower(ls State) int {
	ls.PushString(strings.ToLower(ls.CheckString(1)))
	return 1
}

// string.upper (s)
// http://www.lua.org/manual/5.2/manual.html#pdf-string.upper
func strUpper(ls State) int {
	ls.PushString(strings.ToUpper(ls.CheckString(1)))
	return 1
}

// string.sub (s, i [, j])
// http://www.lua.org/manual/5.2/manual.html#pdf-string.sub
func strSub(ls State) int {
	s := ls.CheckString(1)
	sLen := len(s)
	i := posRelat(ls.CheckInteger(2), sLen)
	j := posRelat(ls.OptInteger(3, -1), sLen)

	if i < 1 {
		i = 1
	}
	if j > sLen {
		j = sLen
	}

	if i <= j {
		ls.PushString(s[i-1 : j])
	} else {
		ls.PushString("")
	}
	return 1
}

// string.byte (s [, i [, j]])
// http://www.lua.org/manual/5.2/manual.html#pdf-string.byte
func strByte(ls State) int {
	s := ls.CheckString(1)
	sLen := len(s)
	i := posRelat(ls.OptInteger(2, 1), sLen)
	j := posRelat(ls.OptInteger(3, int64(i)), sLen)

	if i < 1 {
		i = 1
	}
	if j > sLen {
		j = sLen
	}
	if i > j {
		return 0
	}

	n := j - i + 1
	ls.CheckStack2(n, "string slice too long")
	for k := 0; k < n; k++ {
		ls.PushInteger(int64(s[i+k-1]))
	}
	return n
}

// string.char (···)
// http://www.lua.org/manual/5.2/manual.html#pdf-string.char
func strChar(ls State) int {
	nArgs := ls.GetTop()
	s := make([]byte, nArgs)
	for i := 1; i <= nArgs; i++ {
		c := ls.CheckInteger(i)
		ls.ArgCheck(int64(byte(c)) == c, i, "value out of range")
		s[i-1] = byte(c)
	}
	ls.PushString(string(s))
	return 1
}

// string.format (formatstring, ···)
// http://www.lua.org/manual/5.2/manual.html#pdf-string.format
func strFormatFn(ls State) int {
	ls.PushString(formatString(ls, ls.CheckString(1)))
	return 1
}

/* translate a relative string position: negative means back from end */
func posRelat(pos int64, strLen int) int {
	p := int(pos)
	switch {
	case p >= 0:
		return p
	case -p > strLen:
		return 0
	default:
		return strLen + p + 1
	}
}
