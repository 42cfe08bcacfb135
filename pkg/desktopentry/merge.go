package desktopentry

// Fields are the values an installer derives and forces into the shortcut
type Fields struct {
	Name    string
	Icon    string
	Version string
	Type    string
	Exec    string
}

// Lines renders the controlled fields in their fixed order
func (f Fields) Lines() []string {
	return []string{
		KeyValue{KeyName, f.Name}.Line(),
		KeyValue{KeyIcon, f.Icon}.Line(),
		KeyValue{KeyVersion, f.Version}.Line(),
		KeyValue{KeyType, f.Type}.Line(),
		KeyValue{KeyExec, f.Exec}.Line(),
	}
}

// Merge builds a new entry: the header and the controlled fields first, then
// every line of original whose key has not been emitted yet. A nil or empty
// original yields only the header and the controlled fields.
func Merge(derived Fields, original *Entry) *Entry {
	lines := append([]string{Header}, derived.Lines()...)
	seen := keySet(lines)

	for _, line := range original.Lines() {
		key := lineKey(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		lines = append(lines, line)
	}

	return &Entry{lines: lines}
}
