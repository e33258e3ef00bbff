package cache

import (
	"bytes"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// JSONSerializer 默认序列化，缓存里存的是可读的规范文本
type JSONSerializer struct{}

func NewJSONSerializer() *JSONSerializer { return &JSONSerializer{} }

func (s *JSONSerializer) Serialize(v any) ([]byte, error)      { return json.Marshal(v) }
func (s *JSONSerializer) Deserialize(data []byte, v any) error { return json.Unmarshal(data, v) }
func (s *JSONSerializer) Name() string                         { return "json" }

// MsgpackSerializer 二进制序列化，字段名沿用 json tag，与 JSON 编码的字段一致
type MsgpackSerializer struct{}

func NewMsgpackSerializer() *MsgpackSerializer { return &MsgpackSerializer{} }

func (s *MsgpackSerializer) Serialize(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *MsgpackSerializer) Deserialize(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

func (s *MsgpackSerializer) Name() string { return "msgpack" }

// NewSerializer returns the serializer for name (json or msgpack)
func NewSerializer(name string) (Serializer, error) {
	switch name {
	case "", "json":
		return NewJSONSerializer(), nil
	case "msgpack":
		return NewMsgpackSerializer(), nil
	default:
		return nil, ErrConfigInvalid.WithMsgf("unknown serializer: %s", name)
	}
}
