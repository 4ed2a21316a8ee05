// Package debugapi defines the message and service types the RL/debug
// gRPC transport (server.GRPCServer) exchanges with vdb and the script
// replay client. There's no .proto/protoc toolchain in this build
// environment, so these are hand-written plain Go structs carried over
// gRPC with a JSON codec (see codec.go) instead of protoc-gen-go's
// generated proto.Message types — the service wiring in service.go
// mirrors what protoc-gen-go-grpc would otherwise emit.
package debugapi

// Empty is the argument/result for calls that carry no data.
type Empty struct{}

// FrameResponse carries one rendered frame's raw RGBA pixels.
type FrameResponse struct {
	Pixels []byte
}

// MemoryRequest addresses a single byte in CPU address space.
type MemoryRequest struct {
	Address uint32
}

// MemoryResponse is the byte at a MemoryRequest's address.
type MemoryResponse struct {
	Data uint32
}

// StateRequest names a save-state file to load.
type StateRequest struct {
	Filename string
}

// CPUStateResponse is a snapshot of the 6502's registers and the cycle
// count of the last-completed instruction.
type CPUStateResponse struct {
	A      uint32
	X      uint32
	Y      uint32
	Sp     uint32
	Status uint32
	Pc     uint32
	Cycles uint32
}

// MemoryBlockRequest addresses a run of bytes in CPU address space.
type MemoryBlockRequest struct {
	Address uint32
	Size    uint32
}

// MemoryBlockResponse is the bytes read by a MemoryBlockRequest.
type MemoryBlockResponse struct {
	Data []byte
}

// InputState is one controller's button state, streamed by script
// replay clients in place of a local keyboard/gamepad.
type InputState struct {
	PlayerIndex uint32
	A           bool
	B           bool
	Select      bool
	Start       bool
	Up          bool
	Down        bool
	Left        bool
	Right       bool
}
