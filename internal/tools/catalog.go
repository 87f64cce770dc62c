package tools

import "encoding/json"

const (
	AddMemory   = "add_memory"
	GetMemories = "get_memories"
)

// Tool is one static catalog entry. Schemas are hand-written JSON; the
// catalog is fixed at compile time and shared by reference across every
// tools/list response.
type Tool struct {
	Name        string
	Title       string
	Description string
	Schema      json.RawMessage
	Annotations map[string]bool
}

var catalog = []Tool{
	{
		Name:        AddMemory,
		Title:       "Add Memory",
		Description: "Add a new memory about the user. Call this whenever the user shares preferences, facts about themselves, or explicitly asks you to remember something.",
		Schema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"content": {
					"type": "string",
					"description": "The content to store in memory"
				}
			},
			"required": ["content"]
		}`),
		Annotations: NonIdempotentWriteAnnotations(),
	},
	{
		Name:        GetMemories,
		Title:       "Get Memories",
		Description: "Retrieve all stored memories about the user.",
		Schema: json.RawMessage(`{
			"type": "object",
			"properties": {},
			"required": []
		}`),
		Annotations: ReadOnlyAnnotations(),
	},
}

// Catalog returns the advertised tools in their fixed order: add_memory
// first, then get_memories.
func Catalog() []Tool {
	return catalog
}

func Lookup(name string) (Tool, bool) {
	for _, t := range catalog {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}
