// Package api holds the wire types and service descriptors of the gRPC API.
// Messages travel as JSON (content-subtype "json") so clients need no
// generated stubs.
package api

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// ContentSubtype selects the JSON codec: application/grpc+json.
const ContentSubtype = "json"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec marshals gRPC messages with encoding/json. Protobuf messages (health,
// reflection) go through protojson so they stay reachable over the same
// content-subtype.
type Codec struct{}

func (Codec) Name() string { return ContentSubtype }

func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("json codec marshal %T: %w", v, err)
	}
	return b, nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("json codec unmarshal %T: %w", v, err)
	}
	return nil
}
