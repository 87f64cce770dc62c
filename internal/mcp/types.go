package mcp

import "github.com/mnemo-mcp/mnemo/pkg/protocol"

type Request = protocol.JSONRPCRequest
type Response = protocol.JSONRPCResponse
type Notification = protocol.JSONRPCNotification

// MemoryResourceURI identifies the rendered memory log exposed through
// resources/list and resources/read.
const MemoryResourceURI = "memory://memories"

type ClientInfo struct {
	Name    string
	Version string
}
