package tools

import (
	"fmt"

	"github.com/mnemo-mcp/mnemo/pkg/protocol"
)

// Error kinds reported to the peer alongside the JSON-RPC error code.
const (
	KindUnknownTool      = "unknown_tool"
	KindInvalidArguments = "invalid_arguments"
	KindInternalFailure  = "internal_failure"
)

type ToolError struct {
	Code    int
	Kind    string
	Message string
}

func (e *ToolError) Error() string {
	return e.Message
}

func NewUnknownToolError(name string) *ToolError {
	return &ToolError{
		Code:    protocol.CodeMethodNotFound,
		Kind:    KindUnknownTool,
		Message: fmt.Sprintf("Tool not found: %s", name),
	}
}

func NewInvalidArgumentsError(message string) *ToolError {
	return &ToolError{
		Code:    protocol.CodeInvalidParams,
		Kind:    KindInvalidArguments,
		Message: message,
	}
}

func NewInternalError(name string, err error) *ToolError {
	return &ToolError{
		Code:    protocol.CodeInternalError,
		Kind:    KindInternalFailure,
		Message: fmt.Sprintf("Error executing tool %s: %v", name, err),
	}
}
