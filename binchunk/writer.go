package binchunk

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"math"
)

// Dump serializes proto to the binary LUAC_HEADER-style format (spec
// §6). sourceHash (typically an MD5 of the original source bytes) is
// embedded so a later Undump given the source bytes can detect a stale
// chunk via ErrMismatchedHash. state's Thread.Load passes no source, so
// it does not make this check.
func (proto *Prototype) Dump(sourceHash [16]byte) ([]byte, error) {
	var w bytes.Buffer
	writeHeader(&w)
	w.Write(sourceHash[:])
	writeProto(&w, proto)
	return w.Bytes(), nil
}

// Undump parses a binary chunk dumped by Dump, and if sourceBytes is
// non-nil, verifies the embedded hash matches md5(sourceBytes).
func Undump(data []byte, sourceBytes []byte) (*Prototype, error) {
	r := &reader{data: data}
	if err := r.checkHeader(); err != nil {
		return nil, err
	}
	var hash [16]byte
	copy(hash[:], r.bytes(16))
	if sourceBytes != nil {
		if hash != md5.Sum(sourceBytes) {
			return nil, ErrMismatchedHash
		}
	}
	proto := r.readProto()
	if r.err != nil {
		return nil, r.err
	}
	return proto, nil
}

func writeHeader(w *bytes.Buffer) {
	w.WriteString(Signature)
	w.WriteByte(LuaVersion)
	w.WriteByte(LuacFormat)
	w.WriteString(LuacData)
	w.WriteByte(CIntSize)
	w.WriteByte(CSizeTSize)
	w.WriteByte(InstrSize)
	w.WriteByte(IntegerSize)
	w.WriteByte(NumberSize)
	writeUint64(w, LuacInt)
	writeFloat64(w, LuacNum)
}

func writeUint32(w *bytes.Buffer, n uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], n)
	w.Write(b[:])
}

func writeUint64(w *bytes.Buffer, n uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], n)
	w.Write(b[:])
}

func writeFloat64(w *bytes.Buffer, f float64) {
	writeUint64(w, math.Float64bits(f))
}

func writeString(w *bytes.Buffer, s string) {
	writeUint64(w, uint64(len(s)))
	w.WriteString(s)
}

func writeProto(w *bytes.Buffer, proto *Prototype) {
	writeString(w, proto.Source)
	writeUint32(w, proto.LineDefined)
	writeUint32(w, proto.LastLineDefined)
	w.WriteByte(proto.NumParams)
	w.WriteByte(proto.IsVararg)
	w.WriteByte(proto.MaxStackSize)

	writeUint32(w, uint32(len(proto.Code)))
	for _, c := range proto.Code {
		writeUint32(w, c)
	}

	writeUint32(w, uint32(len(proto.Constants)))
	for _, c := range proto.Constants {
		writeConstant(w, c)
	}

	writeUint32(w, uint32(len(proto.Upvalues)))
	for _, u := range proto.Upvalues {
		w.WriteByte(u.Instack)
		w.WriteByte(u.Idx)
		writeString(w, u.Name)
	}

	writeUint32(w, uint32(len(proto.Protos)))
	for _, p := range proto.Protos {
		writeProto(w, p)
	}

	writeUint32(w, uint32(len(proto.LineInfo)))
	for _, l := range proto.LineInfo {
		writeUint32(w, l)
	}
	writeUint32(w, uint32(len(proto.LocVars)))
	for _, lv := range proto.LocVars {
		writeString(w, lv.VarName)
		writeUint32(w, lv.StartPC)
		writeUint32(w, lv.EndPC)
	}
	writeUint32(w, uint32(len(proto.UpvalueNames)))
	for _, n := range proto.UpvalueNames {
		writeString(w, n)
	}
}

func writeConstant(w *bytes.Buffer, c any) {
	switch v := c.(type) {
	case nil:
		w.WriteByte(TagNil)
	case bool:
		w.WriteByte(TagBoolean)
		if v {
			w.WriteByte(1)
		} else {
			w.WriteByte(0)
		}
	case int64:
		w.WriteByte(TagInteger)
		writeUint64(w, uint64(v))
	case float64:
		w.WriteByte(TagNumber)
		writeFloat64(w, v)
	case string:
		if len(v) < 40 {
			w.WriteByte(TagShortStr)
		} else {
			w.WriteByte(TagLongStr)
		}
		writeString(w, v)
	default:
		panic(fmt.Sprintf("binchunk: constant of type %T cannot be dumped", c))
	}
}

type reader struct {
	data []byte
	pos  int
	err  error
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil {
		return make([]byte, n)
	}
	if r.pos+n > len(r.data) {
		r.fail(ErrTruncated)
		return make([]byte, n)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *reader) byte() byte {
	b := r.bytes(1)
	return b[0]
}

func (r *reader) uint32() uint32 {
	return binary.LittleEndian.Uint32(r.bytes(4))
}

func (r *reader) uint64() uint64 {
	return binary.LittleEndian.Uint64(r.bytes(8))
}

func (r *reader) float64() float64 {
	return math.Float64frombits(r.uint64())
}

func (r *reader) string() string {
	n := r.uint64()
	if n == 0 {
		return ""
	}
	return string(r.bytes(int(n)))
}

func (r *reader) checkHeader() error {
	sig := r.bytes(len(Signature))
	if string(sig) != Signature {
		r.fail(ErrBadSignature)
		return r.err
	}
	if v := r.byte(); v != LuaVersion {
		return fmt.Errorf("%s: chunk was compiled for version 0x%02x, this build is 0x%02x", MismatchVersionPrefix, v, LuaVersion)
	}
	if f := r.byte(); f != LuacFormat {
		return ErrBadFormat
	}
	data := r.bytes(len(LuacData))
	if string(data) != LuacData {
		return ErrBadFormat
	}
	// c int, size_t, instruction, lua integer and lua number sizes
	for _, want := range []byte{CIntSize, CSizeTSize, InstrSize, IntegerSize, NumberSize} {
		if got := r.byte(); got != want && r.err == nil {
			return ErrBadFormat
		}
	}
	if n := int64(r.uint64()); n != LuacInt {
		return fmt.Errorf("%s: endianness mismatch (integer probe %d)", MismatchVersionPrefix, n)
	}
	if f := r.float64(); f != LuacNum {
		return fmt.Errorf("%s: floating point format mismatch (probe %v)", MismatchVersionPrefix, f)
	}
	return r.err
}

func (r *reader) readProto() *Prototype {
	if r.err != nil {
		return nil
	}
	p := &Prototype{}
	p.Source = r.string()
	p.LineDefined = r.uint32()
	p.LastLineDefined = r.uint32()
	p.NumParams = r.byte()
	p.IsVararg = r.byte()
	p.MaxStackSize = r.byte()

	p.Code = make([]uint32, r.uint32())
	for i := range p.Code {
		p.Code[i] = r.uint32()
	}

	p.Constants = make([]any, r.uint32())
	for i := range p.Constants {
		p.Constants[i] = r.readConstant()
	}

	p.Upvalues = make([]Upvalue, r.uint32())
	for i := range p.Upvalues {
		p.Upvalues[i] = Upvalue{Instack: r.byte(), Idx: r.byte(), Name: r.string()}
	}

	p.Protos = make([]*Prototype, r.uint32())
	for i := range p.Protos {
		p.Protos[i] = r.readProto()
	}

	p.LineInfo = make([]uint32, r.uint32())
	for i := range p.LineInfo {
		p.LineInfo[i] = r.uint32()
	}
	p.LocVars = make([]LocVar, r.uint32())
	for i := range p.LocVars {
		p.LocVars[i] = LocVar{VarName: r.string(), StartPC: r.uint32(), EndPC: r.uint32()}
	}
	p.UpvalueNames = make([]string, r.uint32())
	for i := range p.UpvalueNames {
		p.UpvalueNames[i] = r.string()
	}
	return p
}

func (r *reader) readConstant() any {
	switch tag := r.byte(); tag {
	case TagNil:
		return nil
	case TagBoolean:
		return r.byte() != 0
	case TagInteger:
		return int64(r.uint64())
	case TagNumber:
		return r.float64()
	case TagShortStr, TagLongStr:
		return r.string()
	default:
		r.fail(fmt.Errorf("binchunk: unknown constant tag 0x%02x", tag))
		return nil
	}
}
