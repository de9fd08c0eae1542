package state

import "sort"

// weak-table mode bits, derived from a metatable's __mode field.
const (
	weakNone byte = 0
	weakKey  byte = 1
	weakVal  byte = 2
)

// flag bits cached in Table.flags: "this metamethod is known absent",
// the fast-path spec §3 asks for so GETTABLE/SETTABLE/LEN don't probe
// a nil metatable on every access.
const (
	flagNoIndex byte = 1 << iota
	flagNoNewIndex
	flagNoLen
)

// Table is the hybrid array+hash table spec §4.1 describes: an array
// part for 1..N, an open-addressed hash part (Go's builtin map) for
// everything else. Keys are normalized before touching either part —
// see normalizeKey.
type Table struct {
	arr  []any
	hash map[any]any

	metatable *Table
	flags     byte
	weakMode  byte

	// next() iteration order bookkeeping, rebuilt lazily: order is
	// array slots in index order, then hash slots in the order they
	// were first inserted into hashOrder (spec only demands a stable,
	// deterministic order per configuration — it does not have to
	// match Go's own map iteration, which is randomized on purpose).
	hashOrder []any
	chain     map[any]nextEntry
	builtFor  int // generation at which chain was last built
	lastNorm  any
	gen       int
}

type nextEntry struct {
	key any
	val any
}

func newTable(nArr, nHash int) *Table {
	t := &Table{}
	if nArr > 0 {
		t.arr = make([]any, 0, nArr)
	}
	if nHash > 0 {
		t.hash = make(map[any]any, nHash)
	}
	return t
}

// normalizeKey maps a Value to its internal table-key representation:
// strings by content (not by istring pointer — long strings are never
// interned, so two equal long strings would otherwise collide only by
// luck), integer-valued floats to int64 so `t[1]` and `t[1.0]` are the
// same slot, everything else unchanged. Returns an error string for
// nil/NaN keys per spec §4.1.
func normalizeKey(key any) (any, string) {
	switch v := key.(type) {
	case nil:
		return nil, "table index is nil"
	case *istring:
		return v.s, ""
	case float64:
		if v != v { // NaN
			return nil, "table index is NaN"
		}
		if i, ok := floatToInt(v); ok {
			return i, ""
		}
		return v, ""
	default:
		return v, ""
	}
}

func denormalizeKey(norm any) any {
	switch v := norm.(type) {
	case int64:
		return float64(v)
	case string:
		return newIstring(v)
	default:
		return v
	}
}

func (t *Table) rawIntGet(i int64) any {
	if i >= 1 && i <= int64(len(t.arr)) {
		return t.arr[i-1]
	}
	if t.hash == nil {
		return nil
	}
	return t.hash[i]
}

// get reads t[key] without consulting __index.
func (t *Table) get(key any) any {
	norm, errMsg := normalizeKey(key)
	if errMsg != "" {
		return nil
	}
	if i, ok := norm.(int64); ok {
		return t.rawIntGet(i)
	}
	if t.hash == nil {
		return nil
	}
	return t.hash[norm]
}

// put writes t[key] = val without consulting __newindex. Returns a
// non-empty error message for a nil or NaN key (spec §4.1's rawset
// failures).
func (t *Table) put(key, val any) string {
	norm, errMsg := normalizeKey(key)
	if errMsg != "" {
		return errMsg
	}
	t.gen++

	i, isInt := norm.(int64)
	if isInt && i >= 1 {
		arrLen := int64(len(t.arr))
		switch {
		case i <= arrLen:
			t.arr[i-1] = val
			if i == arrLen && val == nil {
				t.shrinkArray()
			}
			return ""
		case i == arrLen+1 && val != nil:
			if t.hash != nil {
				delete(t.hash, norm)
			}
			t.arr = append(t.arr, val)
			t.expandArrayFromHash()
			return ""
		}
	}

	if val == nil {
		if t.hash != nil {
			delete(t.hash, norm)
		}
		return ""
	}
	if t.hash == nil {
		t.hash = make(map[any]any, 8)
	}
	if _, existed := t.hash[norm]; !existed {
		t.hashOrder = append(t.hashOrder, norm)
	}
	t.hash[norm] = val
	if isInt && i > int64(len(t.arr))+1 {
		t.maybeGrowArray()
	}
	return ""
}

func (t *Table) shrinkArray() {
	for i := len(t.arr) - 1; i >= 0; i-- {
		if t.arr[i] != nil {
			t.arr = t.arr[:i+1]
			return
		}
	}
	t.arr = t.arr[:0]
}

// expandArrayFromHash pulls any hash-part keys contiguous with the new
// array tail into the array, the cheap end of the rehash policy: an
// append that happens to extend the sequence absorbs whatever used to
// sit just past it in the hash part.
func (t *Table) expandArrayFromHash() {
	if t.hash == nil {
		return
	}
	for {
		next := int64(len(t.arr)) + 1
		v, ok := t.hash[next]
		if !ok || v == nil {
			return
		}
		delete(t.hash, next)
		t.arr = append(t.arr, v)
	}
}

// maybeGrowArray implements spec §4.1's rehash policy: find the
// largest n such that at least half of the integer keys in 1..n are
// non-nil, and if that beats the current array length, migrate
// 1..n into a fresh array, in O(n log n) thanks to the doubling scan.
func (t *Table) maybeGrowArray() {
	n := 1
	best := 0
	limit := len(t.arr) + len(t.hash) + 1
	for n <= limit {
		present := 0
		for i := 1; i <= n; i++ {
			if t.rawIntGet(int64(i)) != nil {
				present++
			}
		}
		if present*2 >= n {
			best = n
		}
		n *= 2
	}
	if best <= len(t.arr) {
		return
	}
	newArr := make([]any, best)
	for i := 0; i < len(t.arr); i++ {
		newArr[i] = t.arr[i]
	}
	for i := len(t.arr); i < best; i++ {
		key := int64(i + 1)
		if t.hash != nil {
			if v, ok := t.hash[key]; ok {
				newArr[i] = v
				delete(t.hash, key)
			}
		}
	}
	t.arr = newArr
	t.shrinkArray()
}

func (t *Table) combine(other *Table) {
	if other == nil {
		return
	}
	for i, v := range other.arr {
		t.put(float64(i+1), v)
	}
	for k, v := range other.hash {
		t.put(denormalizeKey(k), v)
	}
}

// rawLen implements `#t` for a sequence: if the array's own tail is
// non-nil, that length is already a valid boundary. Otherwise binary
// search the array, or if the array is exhausted/empty, doubling
// search into the hash part followed by a binary search — spec
// §4.1's "boundary, not a count" definition.
func (t *Table) rawLen() int64 {
	n := len(t.arr)
	if n > 0 && t.arr[n-1] == nil {
		lo, hi := 0, n
		for hi-lo > 1 {
			mid := (lo + hi) / 2
			if t.arr[mid-1] == nil {
				hi = mid
			} else {
				lo = mid
			}
		}
		return int64(lo)
	}
	if t.hash == nil || t.hash[int64(n+1)] == nil {
		return int64(n)
	}
	// doubling search for a nil boundary in the hash part
	i, j := int64(n), int64(n+1)
	for t.rawIntGet(j) != nil {
		i = j
		if j > (1<<62)/2 {
			// degenerate: linear scan rather than overflow
			k := i
			for t.rawIntGet(k+1) != nil {
				k++
			}
			return k
		}
		j *= 2
	}
	for j-i > 1 {
		mid := (i + j) / 2
		if t.rawIntGet(mid) == nil {
			j = mid
		} else {
			i = mid
		}
	}
	return i
}

func (t *Table) rebuildChain() {
	t.chain = make(map[any]nextEntry, len(t.arr)+len(t.hash))
	var prev any = nil
	for i, v := range t.arr {
		if v == nil {
			continue
		}
		key := int64(i + 1)
		t.chain[prev] = nextEntry{key: float64(key), val: v}
		prev = key
	}
	live := t.hashOrder[:0:0]
	for _, k := range t.hashOrder {
		if v, ok := t.hash[k]; ok && v != nil {
			live = append(live, k)
		}
	}
	t.hashOrder = live
	for _, k := range t.hashOrder {
		v := t.hash[k]
		t.chain[prev] = nextEntry{key: denormalizeKey(k), val: v}
		prev = k
	}
	t.chain[prev] = nextEntry{}
	t.lastNorm = prev
	t.builtFor = t.gen
}

// next implements the `next` contract from spec §4.1: nil starts
// iteration, and the sequence (array in index order, then hash in
// insertion order) is stable unless the table is mutated with a new
// key in between, which spec leaves undefined.
func (t *Table) next(key any) (any, any, bool) {
	var norm any
	if key != nil {
		var errMsg string
		norm, errMsg = normalizeKey(key)
		if errMsg != "" {
			return nil, nil, false
		}
	}
	if t.chain == nil || t.builtFor != t.gen {
		t.rebuildChain()
	}
	entry, ok := t.chain[norm]
	if !ok {
		return nil, nil, false
	}
	if entry.key == nil && entry.val == nil && norm == t.lastNorm {
		return nil, nil, true // exhausted
	}
	return entry.key, entry.val, true
}

func (t *Table) len() int {
	return len(t.arr)
}

// sortArray sorts the array part in place with sort.Slice, ordering by
// less. Nothing calls it: table.sort (stdlib/lib_table.go) sorts
// through the State API instead.
func (t *Table) sortArray(less func(a, b any) bool) {
	sort.Slice(t.arr, func(i, j int) bool {
		return less(t.arr[i], t.arr[j])
	})
	t.gen++
}
