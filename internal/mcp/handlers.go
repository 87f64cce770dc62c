package mcp

import (
	"encoding/json"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/mnemo-mcp/mnemo/internal/logger"
	"github.com/mnemo-mcp/mnemo/internal/memory"
	"github.com/mnemo-mcp/mnemo/internal/tools"
	"github.com/mnemo-mcp/mnemo/pkg/protocol"
	"github.com/mnemo-mcp/mnemo/pkg/version"
)

var log = logger.ForComponent("mcp")

// Handler maps peer requests onto the memory store and encodes every
// outcome into the response contract. The store is injected so the
// dispatcher can be exercised against a throwaway file in tests.
type Handler struct {
	store       *memory.Store
	startTime   time.Time
	initialized bool
	clientInfo  ClientInfo
}

func NewHandler(store *memory.Store) *Handler {
	return &Handler{
		store:     store,
		startTime: time.Now(),
	}
}

// Initialized reports whether the handshake has completed. Requests are
// stateless, so out-of-order calls are tolerated rather than rejected.
func (h *Handler) Initialized() bool {
	return h.initialized
}

func (h *Handler) Handle(req *Request) *Response {
	resp := &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
	}

	switch req.Method {
	case "initialize":
		result, err := h.handleInitialize(req)
		if err != nil {
			resp.Error = &protocol.JSONRPCError{
				Code:    protocol.CodeInternalError,
				Message: err.Error(),
			}
		} else {
			resp.Result = result
		}
	case "ping":
		resp.Result = map[string]interface{}{}
	case "tools/list":
		resp.Result = h.handleListTools()
	case "tools/call":
		result, err := h.handleCallTool(req)
		if err != nil {
			resp.Error = toolErrorToResponse(err)
		} else {
			resp.Result = result
		}
	case "resources/list":
		resp.Result = h.handleListResources()
	case "resources/read":
		result, err := h.handleReadResource(req)
		if err != nil {
			resp.Error = toolErrorToResponse(err)
		} else {
			resp.Result = result
		}
	case "notifications/initialized":
		h.initialized = true
		resp.Result = map[string]interface{}{}
	default:
		resp.Error = &protocol.JSONRPCError{
			Code:    protocol.CodeMethodNotFound,
			Message: fmt.Sprintf("Method not found: %s", req.Method),
		}
	}

	return resp
}

func toolErrorToResponse(err error) *protocol.JSONRPCError {
	if te, ok := err.(*tools.ToolError); ok {
		return &protocol.JSONRPCError{
			Code:    te.Code,
			Message: te.Message,
			Data:    map[string]interface{}{"kind": te.Kind},
		}
	}
	return &protocol.JSONRPCError{
		Code:    protocol.CodeInternalError,
		Message: err.Error(),
	}
}

func (h *Handler) handleInitialize(req *Request) (interface{}, error) {
	initReq := struct {
		ProtocolVersion string `json:"protocolVersion"`
		ClientInfo      struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"clientInfo"`
	}{}

	paramsData, err := json.Marshal(req.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	if err := json.Unmarshal(paramsData, &initReq); err != nil {
		return nil, fmt.Errorf("failed to parse initialize request: %w", err)
	}

	h.clientInfo.Name = initReq.ClientInfo.Name
	h.clientInfo.Version = initReq.ClientInfo.Version

	log.Info("client connected",
		"client", h.clientInfo.Name,
		"clientVersion", h.clientInfo.Version)

	return map[string]interface{}{
		"protocolVersion": negotiateProtocolVersion(initReq.ProtocolVersion),
		"capabilities": map[string]interface{}{
			"tools":     map[string]interface{}{},
			"resources": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    version.ServerName,
			"version": version.Version,
		},
	}, nil
}

func negotiateProtocolVersion(clientVersion string) string {
	for _, v := range version.SupportedProtocolVersions {
		if clientVersion == v {
			return v
		}
	}

	return version.ProtocolVersion
}

func (h *Handler) handleListTools() interface{} {
	catalog := tools.Catalog()
	toolsData := make([]map[string]interface{}, len(catalog))

	for i, t := range catalog {
		var schema interface{}
		if err := json.Unmarshal(t.Schema, &schema); err != nil {
			schema = t.Schema
		}

		toolsData[i] = map[string]interface{}{
			"name":        t.Name,
			"title":       t.Title,
			"description": t.Description,
			"inputSchema": schema,
			"annotations": t.Annotations,
		}
	}

	return map[string]interface{}{
		"tools": toolsData,
	}
}

func (h *Handler) handleCallTool(req *Request) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool execution panicked: %v", r)
			log.Error("tool panic recovered",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	callReq := struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}{}

	paramsData, err := json.Marshal(req.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	if err := json.Unmarshal(paramsData, &callReq); err != nil {
		return nil, tools.NewInvalidArgumentsError(fmt.Sprintf("failed to parse tool call request: %v", err))
	}

	if callReq.Name == "" {
		return nil, tools.NewInvalidArgumentsError("tool name is required")
	}

	switch callReq.Name {
	case tools.AddMemory:
		return h.callAddMemory(callReq.Arguments)
	case tools.GetMemories:
		return h.callGetMemories()
	default:
		return nil, tools.NewUnknownToolError(callReq.Name)
	}
}

// callAddMemory validates the arguments structurally only: content must
// be present and be a string. Empty and whitespace-only content is
// stored as given.
func (h *Handler) callAddMemory(arguments json.RawMessage) (interface{}, error) {
	var args struct {
		Content *string `json:"content"`
	}
	if len(arguments) > 0 {
		if err := json.Unmarshal(arguments, &args); err != nil {
			return nil, tools.NewInvalidArgumentsError(fmt.Sprintf("invalid arguments: %v", err))
		}
	}

	if args.Content == nil {
		return nil, tools.NewInvalidArgumentsError("missing required field: content")
	}

	if err := h.store.Append(*args.Content); err != nil {
		return nil, tools.NewInternalError(tools.AddMemory, err)
	}

	return textResult("Memory saved successfully."), nil
}

func (h *Handler) callGetMemories() (interface{}, error) {
	memories, err := h.store.ReadAll()
	if err != nil {
		return nil, tools.NewInternalError(tools.GetMemories, err)
	}

	return textResult(memories), nil
}

func textResult(text string) map[string]interface{} {
	return map[string]interface{}{
		"content": []protocol.TextContent{
			protocol.NewTextContent(text),
		},
	}
}

func (h *Handler) handleListResources() interface{} {
	return map[string]interface{}{
		"resources": []protocol.Resource{
			{
				URI:         MemoryResourceURI,
				Name:        "memories",
				Description: "The full memory log, entries in append order",
				MimeType:    "text/markdown",
			},
		},
	}
}

func (h *Handler) handleReadResource(req *Request) (interface{}, error) {
	readReq := struct {
		URI string `json:"uri"`
	}{}

	paramsData, err := json.Marshal(req.Params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	if err := json.Unmarshal(paramsData, &readReq); err != nil {
		return nil, tools.NewInvalidArgumentsError(fmt.Sprintf("failed to parse resource read request: %v", err))
	}

	if readReq.URI != MemoryResourceURI {
		return nil, tools.NewInvalidArgumentsError(fmt.Sprintf("unknown resource: %s", readReq.URI))
	}

	memories, err := h.store.ReadAll()
	if err != nil {
		return nil, tools.NewInternalError("resources/read", err)
	}

	return map[string]interface{}{
		"contents": []protocol.ResourceContents{
			{
				URI:      MemoryResourceURI,
				MimeType: "text/markdown",
				Text:     memories,
			},
		},
	}, nil
}
