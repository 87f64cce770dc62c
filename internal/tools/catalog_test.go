package tools

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/mnemo-mcp/mnemo/pkg/protocol"
)

func TestCatalogOrderAndShape(t *testing.T) {
	catalog := Catalog()

	if len(catalog) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(catalog))
	}

	if catalog[0].Name != AddMemory {
		t.Errorf("expected first tool %q, got %q", AddMemory, catalog[0].Name)
	}
	if catalog[1].Name != GetMemories {
		t.Errorf("expected second tool %q, got %q", GetMemories, catalog[1].Name)
	}

	for _, tool := range catalog {
		if tool.Description == "" {
			t.Errorf("tool %s has empty description", tool.Name)
		}

		var schema map[string]interface{}
		if err := json.Unmarshal(tool.Schema, &schema); err != nil {
			t.Fatalf("tool %s schema is not valid JSON: %v", tool.Name, err)
		}
		if schema["type"] != "object" {
			t.Errorf("tool %s schema type = %v, want object", tool.Name, schema["type"])
		}
		if _, ok := schema["properties"]; !ok {
			t.Errorf("tool %s schema has no properties", tool.Name)
		}
	}
}

func TestAddMemorySchemaRequiresContent(t *testing.T) {
	tool, ok := Lookup(AddMemory)
	if !ok {
		t.Fatal("add_memory not in catalog")
	}

	var schema struct {
		Required []string `json:"required"`
	}
	if err := json.Unmarshal(tool.Schema, &schema); err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}

	if len(schema.Required) != 1 || schema.Required[0] != "content" {
		t.Errorf("expected required [content], got %v", schema.Required)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("nonexistent_tool"); ok {
		t.Error("expected Lookup to miss for unknown name")
	}
}

func TestErrorTaxonomy(t *testing.T) {
	cases := []struct {
		err      *ToolError
		wantCode int
		wantKind string
	}{
		{NewUnknownToolError("x"), protocol.CodeMethodNotFound, KindUnknownTool},
		{NewInvalidArgumentsError("bad"), protocol.CodeInvalidParams, KindInvalidArguments},
		{NewInternalError("x", errors.New("disk full")), protocol.CodeInternalError, KindInternalFailure},
	}

	for _, tc := range cases {
		if tc.err.Code != tc.wantCode {
			t.Errorf("%s: code = %d, want %d", tc.wantKind, tc.err.Code, tc.wantCode)
		}
		if tc.err.Kind != tc.wantKind {
			t.Errorf("kind = %q, want %q", tc.err.Kind, tc.wantKind)
		}
		if tc.err.Error() == "" {
			t.Errorf("%s: empty message", tc.wantKind)
		}
	}
}

func TestAnnotations(t *testing.T) {
	add, _ := Lookup(AddMemory)
	if add.Annotations["readOnlyHint"] {
		t.Error("add_memory must not be marked read-only")
	}
	if add.Annotations["idempotentHint"] {
		t.Error("appending is not idempotent")
	}

	get, _ := Lookup(GetMemories)
	if !get.Annotations["readOnlyHint"] {
		t.Error("get_memories must be marked read-only")
	}
}
