package debugapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const serviceName = "nescore.debugapi.ControllerService"

// ControllerServiceServer is the RL/debug transport's server API: frame
// and memory reads, save-state load, run/pause/step control, and a
// streaming controller-input sink.
type ControllerServiceServer interface {
	GetFrame(context.Context, *Empty) (*FrameResponse, error)
	ReadMemory(context.Context, *MemoryRequest) (*MemoryResponse, error)
	LoadState(context.Context, *StateRequest) (*Empty, error)
	ResetSystem(context.Context, *Empty) (*Empty, error)
	Pause(context.Context, *Empty) (*Empty, error)
	Resume(context.Context, *Empty) (*Empty, error)
	Step(context.Context, *Empty) (*Empty, error)
	GetCPUState(context.Context, *Empty) (*CPUStateResponse, error)
	ReadMemoryBlock(context.Context, *MemoryBlockRequest) (*MemoryBlockResponse, error)
	StreamInput(ControllerService_StreamInputServer) error
}

// ControllerService_StreamInputServer is the server side of the
// bidirectional StreamInput call.
type ControllerService_StreamInputServer = grpc.BidiStreamingServer[InputState, Empty]

// UnimplementedControllerServiceServer must be embedded by any server
// implementation for forward compatibility with methods added later.
type UnimplementedControllerServiceServer struct{}

func (UnimplementedControllerServiceServer) GetFrame(context.Context, *Empty) (*FrameResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetFrame not implemented")
}
func (UnimplementedControllerServiceServer) ReadMemory(context.Context, *MemoryRequest) (*MemoryResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReadMemory not implemented")
}
func (UnimplementedControllerServiceServer) LoadState(context.Context, *StateRequest) (*Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method LoadState not implemented")
}
func (UnimplementedControllerServiceServer) ResetSystem(context.Context, *Empty) (*Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ResetSystem not implemented")
}
func (UnimplementedControllerServiceServer) Pause(context.Context, *Empty) (*Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Pause not implemented")
}
func (UnimplementedControllerServiceServer) Resume(context.Context, *Empty) (*Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Resume not implemented")
}
func (UnimplementedControllerServiceServer) Step(context.Context, *Empty) (*Empty, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Step not implemented")
}
func (UnimplementedControllerServiceServer) GetCPUState(context.Context, *Empty) (*CPUStateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCPUState not implemented")
}
func (UnimplementedControllerServiceServer) ReadMemoryBlock(context.Context, *MemoryBlockRequest) (*MemoryBlockResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ReadMemoryBlock not implemented")
}
func (UnimplementedControllerServiceServer) StreamInput(ControllerService_StreamInputServer) error {
	return status.Errorf(codes.Unimplemented, "method StreamInput not implemented")
}

func _ControllerService_GetFrame_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControllerServiceServer).GetFrame(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetFrame"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControllerServiceServer).GetFrame(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _ControllerService_ReadMemory_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MemoryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControllerServiceServer).ReadMemory(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/ReadMemory"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControllerServiceServer).ReadMemory(ctx, req.(*MemoryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ControllerService_LoadState_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(StateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControllerServiceServer).LoadState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/LoadState"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControllerServiceServer).LoadState(ctx, req.(*StateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ControllerService_ResetSystem_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControllerServiceServer).ResetSystem(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/ResetSystem"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControllerServiceServer).ResetSystem(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _ControllerService_Pause_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControllerServiceServer).Pause(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Pause"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControllerServiceServer).Pause(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _ControllerService_Resume_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControllerServiceServer).Resume(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Resume"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControllerServiceServer).Resume(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _ControllerService_Step_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControllerServiceServer).Step(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Step"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControllerServiceServer).Step(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _ControllerService_GetCPUState_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControllerServiceServer).GetCPUState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetCPUState"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControllerServiceServer).GetCPUState(ctx, req.(*Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _ControllerService_ReadMemoryBlock_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MemoryBlockRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ControllerServiceServer).ReadMemoryBlock(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/ReadMemoryBlock"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ControllerServiceServer).ReadMemoryBlock(ctx, req.(*MemoryBlockRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ControllerService_StreamInput_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(ControllerServiceServer).StreamInput(&grpc.GenericServerStream[InputState, Empty]{ServerStream: stream})
}

// ControllerService_ServiceDesc is the gRPC service descriptor
// RegisterControllerServiceServer hands to grpc.Server.RegisterService.
var ControllerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ControllerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetFrame", Handler: _ControllerService_GetFrame_Handler},
		{MethodName: "ReadMemory", Handler: _ControllerService_ReadMemory_Handler},
		{MethodName: "LoadState", Handler: _ControllerService_LoadState_Handler},
		{MethodName: "ResetSystem", Handler: _ControllerService_ResetSystem_Handler},
		{MethodName: "Pause", Handler: _ControllerService_Pause_Handler},
		{MethodName: "Resume", Handler: _ControllerService_Resume_Handler},
		{MethodName: "Step", Handler: _ControllerService_Step_Handler},
		{MethodName: "GetCPUState", Handler: _ControllerService_GetCPUState_Handler},
		{MethodName: "ReadMemoryBlock", Handler: _ControllerService_ReadMemoryBlock_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "StreamInput",
			Handler:       _ControllerService_StreamInput_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "debugapi/controller_service",
}

// RegisterControllerServiceServer registers srv's methods on s.
func RegisterControllerServiceServer(s grpc.ServiceRegistrar, srv ControllerServiceServer) {
	s.RegisterService(&ControllerService_ServiceDesc, srv)
}

// ControllerServiceClient is the client side of ControllerServiceServer.
type ControllerServiceClient interface {
	GetFrame(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*FrameResponse, error)
	ReadMemory(ctx context.Context, in *MemoryRequest, opts ...grpc.CallOption) (*MemoryResponse, error)
	LoadState(ctx context.Context, in *StateRequest, opts ...grpc.CallOption) (*Empty, error)
	ResetSystem(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	Pause(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	Resume(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	Step(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	GetCPUState(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CPUStateResponse, error)
	ReadMemoryBlock(ctx context.Context, in *MemoryBlockRequest, opts ...grpc.CallOption) (*MemoryBlockResponse, error)
	StreamInput(ctx context.Context, opts ...grpc.CallOption) (ControllerService_StreamInputClient, error)
}

// ControllerService_StreamInputClient is the client side of the
// bidirectional StreamInput call.
type ControllerService_StreamInputClient = grpc.BidiStreamingClient[InputState, Empty]

type controllerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewControllerServiceClient wraps a connection dialed against a
// ControllerService server (see debugapi.Codec for the required dial
// option).
func NewControllerServiceClient(cc grpc.ClientConnInterface) ControllerServiceClient {
	return &controllerServiceClient{cc}
}

func (c *controllerServiceClient) GetFrame(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*FrameResponse, error) {
	out := new(FrameResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetFrame", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerServiceClient) ReadMemory(ctx context.Context, in *MemoryRequest, opts ...grpc.CallOption) (*MemoryResponse, error) {
	out := new(MemoryResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ReadMemory", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerServiceClient) LoadState(ctx context.Context, in *StateRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/LoadState", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerServiceClient) ResetSystem(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ResetSystem", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerServiceClient) Pause(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Pause", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerServiceClient) Resume(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Resume", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerServiceClient) Step(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Step", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerServiceClient) GetCPUState(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CPUStateResponse, error) {
	out := new(CPUStateResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetCPUState", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerServiceClient) ReadMemoryBlock(ctx context.Context, in *MemoryBlockRequest, opts ...grpc.CallOption) (*MemoryBlockResponse, error) {
	out := new(MemoryBlockResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ReadMemoryBlock", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *controllerServiceClient) StreamInput(ctx context.Context, opts ...grpc.CallOption) (ControllerService_StreamInputClient, error) {
	stream, err := c.cc.NewStream(ctx, &ControllerService_ServiceDesc.Streams[0], "/"+serviceName+"/StreamInput", opts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[InputState, Empty]{ClientStream: stream}, nil
}
