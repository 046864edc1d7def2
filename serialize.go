package srm

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/coregx/srm/matcher"
)

// String returns the serialized form of the regex: one line of visible
// ASCII that Deserialize turns back into an equivalent Regex.
func (r *Regex) String() string {
	return r.engine.String()
}

// Serialize writes the serialized form of the regex to w.
func (r *Regex) Serialize(w io.Writer) error {
	_, err := io.WriteString(w, r.engine.String())
	return err
}

// SerializeFile writes the serialized form of the regex to the named file,
// creating or truncating it.
func (r *Regex) SerializeFile(name string) error {
	return os.WriteFile(name, []byte(r.engine.String()), 0o644) //nolint:gosec // serialized matchers are not secret
}

// Deserialize restores a regex from its serialized form. The options,
// culture and timeout are restored with it; the matcher configuration is
// the default one.
func Deserialize(text string) (*Regex, error) {
	return DeserializeWithConfig(text, DefaultConfig())
}

// DeserializeWithConfig is Deserialize with a custom matcher configuration.
// The Options, Timeout and Culture fields of config are ignored.
func DeserializeWithConfig(text string, config Config) (*Regex, error) {
	engine, err := matcher.Deserialize(text, config.Config)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine}, nil
}

// DeserializeFrom reads one serialized regex from rd, up to the end of the
// line or of the input.
func DeserializeFrom(rd io.Reader) (*Regex, error) {
	line, err := bufio.NewReader(rd).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	return Deserialize(strings.TrimRight(line, "\r\n"))
}

// DeserializeFile restores a regex from the named file.
func DeserializeFile(name string) (*Regex, error) {
	f, err := os.Open(name) //nolint:gosec // caller-chosen path
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DeserializeFrom(f)
}
