package stdlib

import (
	"math"

	. "git.lolli.tech/lollipopkit/luacore/api"
)

var mathFuncs = FuncReg{
	"max":   mathMax,
	"min":   mathMin,
	"exp":   mathExp,
	"log":   mathLog,
	"deg":   mathDeg,
	"rad":   mathRad,
	"sin":   mathSin,
	"cos":   mathCos,
	"tan":   mathTan,
	"asin":  mathAsin,
	"acos":  mathAcos,
	"atan":  mathAtan,
	"ceil":  mathCeil,
	"floor": mathFloor,
	"fmod":  mathFmod,
	"modf":  mathModf,
	"abs":   mathAbs,
	"sqrt":  mathSqrt,
}

// lua-5.2's lmathlib.c#luaopen_math. Lua 5.2 has no integer subtype,
// so math.type/math.ult/math.tointeger (added in 5.3) have no home
// here.
func OpenMathLib(ls State) int {
	ls.NewLib(mathFuncs)
	ls.PushNumber(math.Pi)
	ls.SetField(-2, "pi")
	ls.PushNumber(math.Inf(1))
	ls.SetField(-2, "huge")
	return 1
}

// math.max (x, ···)
// http://www.lua.org/manual/5.2/manual.html#pdf-math.max
func mathMax(ls State) int {
	n := ls.GetTop()
	imax := 1
	ls.ArgCheck(n >= 1, 1, "value expected")
	for i := 2; i <= n; i++ {
		if ls.Compare(imax, i, OpLt) {
			imax = i
		}
	}
	ls.PushValue(imax)
	return 1
}

// math.min (x, ···)
// http://www.lua.org/manual/5.2/manual.html#pdf-math.min
func mathMin(ls State) int {
	n := ls.GetTop()
	imin := 1
	ls.ArgCheck(n >= 1, 1, "value expected")
	for i := 2; i <= n; i++ {
		if ls.Compare(i, imin, OpLt) {
			imin = i
		}
	}
	ls.PushValue(imin)
	return 1
}

func mathExp(ls State) int {
	ls.PushNumber(math.Exp(ls.CheckNumber(1)))
	return 1
}

// math.log (x [, base])
// http://www.lua.org/manual/5.2/manual.html#pdf-math.log
func mathLog(ls State) int {
	x := ls.CheckNumber(1)
	var res float64
	if ls.IsNoneOrNil(2) {
		res = math.Log(x)
	} else {
		base := ls.ToNumber(2)
		switch base {
		case 2:
			res = math.Log2(x)
		case 10:
			res = math.Log10(x)
		default:
			res = math.Log(x) / math.Log(base)
		}
	}
	ls.PushNumber(res)
	return 1
}

func mathDeg(ls State) int {
	ls.PushNumber(ls.CheckNumber(1) * 180 / math.Pi)
	return 1
}

func mathRad(ls State) int {
	ls.PushNumber(ls.CheckNumber(1) * math.Pi / 180)
	return 1
}

func mathSin(ls State) int {
	ls.PushNumber(math.Sin(ls.CheckNumber(1)))
	return 1
}

func mathCos(ls State) int {
	ls.PushNumber(math.Cos(ls.CheckNumber(1)))
	return 1
}

func mathTan(ls State) int {
	ls.PushNumber(math.Tan(ls.CheckNumber(1)))
	return 1
}

func mathAsin(ls State) int {
	ls.PushNumber(math.Asin(ls.CheckNumber(1)))
	return 1
}

func mathAcos(ls State) int {
	ls.PushNumber(math.Acos(ls.CheckNumber(1)))
	return 1
}

// math.atan (y [, x])
// http://www.lua.org/manual/5.2/manual.html#pdf-math.atan
func mathAtan(ls State) int {
	y := ls.CheckNumber(1)
	x := ls.OptNumber(2, 1.0)
	ls.PushNumber(math.Atan2(y, x))
	return 1
}

func mathCeil(ls State) int {
	ls.PushNumber(math.Ceil(ls.CheckNumber(1)))
	return 1
}

func mathFloor(ls State) int {
	ls.PushNumber(math.Floor(ls.CheckNumber(1)))
	return 1
}

// math.fmod (x, y)
// http://www.lua.org/manual/5.2/manual.html#pdf-math.fmod
func mathFmod(ls State) int {
	x := ls.CheckNumber(1)
	y := ls.CheckNumber(2)
	ls.PushNumber(math.Mod(x, y))
	return 1
}

// math.modf (x)
// http://www.lua.org/manual/5.2/manual.html#pdf-math.modf
func mathModf(ls State) int {
	x := ls.CheckNumber(1)
	i, f := math.Modf(x)
	ls.PushNumber(i)
	if math.IsInf(x, 0) {
		ls.PushNumber(0)
	} else {
		ls.PushNumber(f)
	}
	return 2
}

// math.abs (x)
// http://www.lua.org/manual/5.2/manual.html#pdf-math.abs
func mathAbs(ls State) int {
	ls.PushNumber(math.Abs(ls.CheckNumber(1)))
	return 1
}

func mathSqrt(ls State) int {
	ls.PushNumber(math.Sqrt(ls.CheckNumber(1)))
	return 1
}
