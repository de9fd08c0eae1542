package binchunk

// DumpJSON and UndumpJSON are the secondary, debug-friendly wire
// format SPEC_FULL §8 keeps alongside the binary LUAC-style dump: the
// teacher repo's own experimental chunk format, marshaled through
// jsoniter rather than hand-rolled byte packing. A host's debug
// tooling can read a dumped chunk without a separate disassembler.
const jsonMagic = "\x1bLKJS"

func (proto *Prototype) DumpJSON() ([]byte, error) {
	body, err := json.Marshal(proto)
	if err != nil {
		return nil, err
	}
	return append([]byte(jsonMagic), body...), nil
}

func IsJSONChunk(data []byte) bool {
	return len(data) >= len(jsonMagic) && string(data[:len(jsonMagic)]) == jsonMagic
}

func UndumpJSON(data []byte) (*Prototype, error) {
	var proto Prototype
	if err := json.Unmarshal(data[len(jsonMagic):], &proto); err != nil {
		return nil, err
	}
	return &proto, nil
}
