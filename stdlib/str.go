package stdlib

import (
	"fmt"
	"regexp"
	"strings"

	. "git.lolli.tech/lollipopkit/luacore/api"
)

// tag = %[flags][width][.precision]specifier
var tagPattern = regexp.MustCompile(`%[ #+-0]?[0-9]*(\.[0-9]+)?[cdeEfgGioqsuxX%]`)

func parseFmtStr(s string) []string {
	if s == "" || strings.IndexByte(s, '%') < 0 {
		return []string{s}
	}

	parsed := make([]string, 0, len(s)/2)
	for s != "" {
		loc := tagPattern.FindStringIndex(s)
		if loc == nil {
			parsed = append(parsed, s)
			break
		}

		head, tag, tail := s[:loc[0]], s[loc[0]:loc[1]], s[loc[1]:]
		if head != "" {
			parsed = append(parsed, head)
		}
		parsed = append(parsed, tag)
		s = tail
	}
	return parsed
}

// formatString implements string.format's %-directive substitution.
// argIdx starts at 1 (the format string itself) so the first %
// directive consumes stack argument 2.
func formatString(ls State, fmtStr string) string {
	argIdx := 1
	arr := parseFmtStr(fmtStr)
	for i := range arr {
		if arr[i][0] == '%' {
			if arr[i] == "%%" {
				arr[i] = "%"
			} else {
				argIdx++
				arr[i] = formatArg(arr[i], ls, argIdx)
			}
		}
	}
	return strings.Join(arr, "")
}

func formatArg(tag string, ls State, argIdx int) string {
	switch tag[len(tag)-1] {
	case 'c':
		return string([]byte{byte(ls.ToInteger(argIdx))})
	case 'i':
		tag = tag[:len(tag)-1] + "d"
		return fmt.Sprintf(tag, ls.ToInteger(argIdx))
	case 'd', 'o':
		return fmt.Sprintf(tag, ls.ToInteger(argIdx))
	case 'u':
		tag = tag[:len(tag)-1] + "d"
		return fmt.Sprintf(tag, uint(ls.ToInteger(argIdx)))
	case 'x', 'X':
		return fmt.Sprintf(tag, uint(ls.ToInteger(argIdx)))
	case 'e', 'E', 'f', 'g', 'G':
		return fmt.Sprintf(tag, ls.ToNumber(argIdx))
	case 's', 'q':
		return fmt.Sprintf(tag, ls.ToString2(argIdx))
	default:
		return tag
	}
}
