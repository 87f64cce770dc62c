package mcp

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"

	"github.com/mnemo-mcp/mnemo/pkg/protocol"
)

// Server runs the request/response loop over a newline-delimited JSON
// stream: one message per line in, one per line out. Responses and
// server-initiated notifications share the output stream, serialized by
// a write mutex.
type Server struct {
	handler *Handler

	writeMu sync.Mutex
	encoder *json.Encoder
}

func NewServer(handler *Handler) *Server {
	return &Server{handler: handler}
}

func (s *Server) HandleRequest(req *Request) *Response {
	return s.handler.Handle(req)
}

func (s *Server) ProcessStream(reader io.Reader, writer io.Writer) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	s.writeMu.Lock()
	s.encoder = json.NewEncoder(writer)
	s.writeMu.Unlock()

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.write(&Response{
				JSONRPC: "2.0",
				ID:      nil,
				Error: &protocol.JSONRPCError{
					Code:    protocol.CodeParseError,
					Message: "Parse error",
				},
			})
			continue
		}

		resp := s.HandleRequest(&req)
		if req.ID == nil {
			// Notification: no response on the wire.
			continue
		}
		if err := s.write(resp); err != nil {
			return err
		}
	}

	return scanner.Err()
}

// NotifyResourceUpdated tells the peer the memory log changed. Dropped
// silently when no stream is attached yet.
func (s *Server) NotifyResourceUpdated(uri string) {
	notification := &Notification{
		JSONRPC: "2.0",
		Method:  "notifications/resources/updated",
		Params:  map[string]interface{}{"uri": uri},
	}

	if err := s.write(notification); err != nil {
		log.Warn("failed to send resource notification", "uri", uri, "error", err)
	}
}

func (s *Server) write(msg interface{}) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.encoder == nil {
		return nil
	}
	return s.encoder.Encode(msg)
}
