package version

// Version is overridable at build time via -ldflags.
var Version = "0.1.0"

const ServerName = "Mnemo MCP Server"

const ProtocolVersion = "2024-11-05"

var SupportedProtocolVersions = []string{
	"2024-11-05",
	"2025-03-26",
}
