package rpc

import "encoding/json"

// jsonCodec serializes Connect messages with encoding/json. The service
// declares its messages as plain Go structs instead of generated protobuf
// types, so clients speak the Connect protocol with JSON bodies and
// snake_case fields.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (jsonCodec) Unmarshal(data []byte, message any) error {
	return json.Unmarshal(data, message)
}
