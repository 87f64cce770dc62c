package memory

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mnemo-mcp/mnemo/internal/logger"
)

var log = logger.ForComponent("memory")

// NoMemoriesMessage is returned by ReadAll when the log is absent or
// holds nothing but whitespace. Clients rely on the exact wording.
const NoMemoriesMessage = "No memories found yet."

// Store persists timestamped text entries in a single markdown file.
// The file is only ever extended: each Append adds a "## <timestamp>"
// header line, the raw text, and a blank separator line. Nothing is
// rewritten in place, so a well-formed log stays well-formed across
// appends.
type Store struct {
	path string
	mu   sync.Mutex

	// now is swapped out in tests to pin entry headers.
	now func() time.Time
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		now:  time.Now,
	}
}

func (s *Store) Path() string {
	return s.path
}

// Append durably writes one entry to the tail of the log. The text is
// stored as given: empty and whitespace-only entries are accepted.
func (s *Store) Append(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open memory file: %w", err)
	}
	defer f.Close()

	header := FormatTimestamp(s.now().UTC().Unix())
	if _, err := fmt.Fprintf(f, "## %s\n%s\n\n", header, text); err != nil {
		return fmt.Errorf("failed to write memory entry: %w", err)
	}

	log.Debug("memory appended", "bytes", len(text))
	return nil
}

// ReadAll returns the entire log verbatim, entries in append order. A
// missing or whitespace-only file yields NoMemoriesMessage, not an error.
func (s *Store) ReadAll() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NoMemoriesMessage, nil
		}
		return "", fmt.Errorf("failed to read memory file: %w", err)
	}

	content := string(data)
	if strings.TrimSpace(content) == "" {
		return NoMemoriesMessage, nil
	}

	return content, nil
}
