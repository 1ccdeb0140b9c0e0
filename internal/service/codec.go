package service

import (
	"encoding/json"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// Ensure JSONCodec implements connect.Codec
var _ connect.Codec = JSONCodec{}

// JSONCodec carries plain Go structs as JSON bodies under the standard
// Connect "json" codec name. Well-known protobuf types such as
// emptypb.Empty go through protojson.
type JSONCodec struct{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

// Unmarshal implements connect.Codec.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		if len(data) == 0 {
			return nil
		}
		return protojson.Unmarshal(data, m)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}

// WithJSON registers JSONCodec on a handler or client.
func WithJSON() connect.Option {
	return connect.WithCodec(JSONCodec{})
}
