package debugapi

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

const codecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec lets this package's plain structs ride over gRPC without a
// proto.Message implementation. Both server and client are expected to
// force it explicitly (ForceServerCodec / ForceCodec) rather than rely
// on content-type negotiation, since neither side advertises "proto".
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

func (jsonCodec) Name() string { return codecName }

// Codec returns the codec GetServer/client dial options should force so
// debugapi's plain structs can be marshaled without protoc-generated
// types.
func Codec() encoding.Codec { return jsonCodec{} }
