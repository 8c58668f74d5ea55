package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/petasbytes/personachat/chat"
)

// ErrUnsupportedFormat is returned for export formats other than text/json.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Export formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Export serializes conv without mutating it or touching disk; writing the
// result anywhere is the caller's job.
//   - text: one "<role>: <content>" line per history message, in order.
//   - json: the snapshot shape, indented.
func Export(conv *chat.Conversation, format string) ([]byte, error) {
	switch format {
	case FormatText:
		var sb strings.Builder
		for _, m := range conv.History {
			sb.WriteString(string(m.Role))
			sb.WriteString(": ")
			sb.WriteString(m.Content)
			sb.WriteByte('\n')
		}
		return []byte(sb.String()), nil
	case FormatJSON:
		b, err := json.MarshalIndent(snapshotOf(conv), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal export: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
