package desktopentry

import (
	"strings"
)

const (
	// Header opens the main section of every shortcut deskit writes
	Header = "[Desktop Entry]"

	// Extension is the file suffix desktop environments scan for
	Extension = ".desktop"

	// Controlled keys, emitted first and exactly once by Merge
	KeyName    = "Name"
	KeyIcon    = "Icon"
	KeyVersion = "X-Version"
	KeyType    = "X-Type"
	KeyExec    = "Exec"

	// Keys read from source entries
	KeyAppImageVersion = "X-AppImage-Version"
	KeyTerminal        = "Terminal"
	KeyEntryType       = "Type"
	KeyStartupWMClass  = "StartupWMClass"

	TypeAppImage = "AppImage"
	TypeWebApp   = "WebApp"
)

// Entry is a desktop entry kept as its original lines
type Entry struct {
	lines []string
}

// KeyValue is one Key=Value line
type KeyValue struct {
	Key   string
	Value string
}

// Line renders the pair as it appears in a file
func (kv KeyValue) Line() string {
	return kv.Key + "=" + kv.Value
}

// DefaultFields are the fixed literals every deskit shortcut carries so the
// required Type field is never missing.
func DefaultFields() []KeyValue {
	return []KeyValue{
		{Key: KeyTerminal, Value: "false"},
		{Key: KeyEntryType, Value: "Application"},
	}
}

// Parse splits text into lines. CRLF endings and trailing blank lines are
// dropped; everything else, comments and other sections included, is kept
// verbatim.
func Parse(text string) *Entry {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return &Entry{lines: lines}
}

// Lines returns a copy of the entry's lines
func (e *Entry) Lines() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.lines))
	copy(out, e.lines)
	return out
}

// Empty reports whether the entry has no lines
func (e *Entry) Empty() bool {
	return e == nil || len(e.lines) == 0
}

// Lookup returns the value of the first line of the form "Key=value" with a
// non-empty value.
func (e *Entry) Lookup(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	prefix := key + "="
	for _, line := range e.lines {
		if strings.HasPrefix(line, prefix) && len(line) > len(prefix) {
			return line[len(prefix):], true
		}
	}
	return "", false
}

// Get returns Lookup's value or "" when the key is absent
func (e *Entry) Get(key string) string {
	v, _ := e.Lookup(key)
	return v
}

// WithDefaults returns a copy with each pair appended when its key is not
// present yet. Existing lines always win.
func (e *Entry) WithDefaults(defaults ...KeyValue) *Entry {
	out := &Entry{lines: e.Lines()}
	seen := keySet(out.lines)
	for _, kv := range defaults {
		if seen[kv.Key] {
			continue
		}
		out.lines = append(out.lines, kv.Line())
		seen[kv.Key] = true
	}
	return out
}

// String serializes the entry, newline-joined without a trailing newline
func (e *Entry) String() string {
	if e == nil {
		return ""
	}
	return strings.Join(e.lines, "\n")
}

// lineKey returns the text before the first '=' or the whole line when there
// is none. Section headers and comments are therefore keyed by themselves.
func lineKey(line string) string {
	if i := strings.IndexByte(line, '='); i >= 0 {
		return line[:i]
	}
	return line
}

func keySet(lines []string) map[string]bool {
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		seen[lineKey(line)] = true
	}
	return seen
}
