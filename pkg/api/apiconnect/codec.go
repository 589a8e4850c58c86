// Package apiconnect wires the api messages onto Connect handlers and clients.
// Messages are plain Go structs carried by a JSON codec.
package apiconnect

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// codecName replaces Connect's built-in protojson codec, which only accepts
// protobuf messages.
const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}

// WithJSON registers the JSON codec with a handler or client.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
