package types

import "encoding/base64"

// Artifact is a scannable image produced for a record.
type Artifact struct {
	PNG         []byte
	Payload     string
	Placeholder bool
}

// DataURL returns the artifact as a base64 PNG data URL.
func (a Artifact) DataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(a.PNG)
}

// Empty reports whether the artifact carries no image.
func (a Artifact) Empty() bool {
	return len(a.PNG) == 0
}

// Encoder turns a record into a scannable image. Implementations handle
// their own failures and always return an artifact, falling back to a
// placeholder image.
type Encoder interface {
	Encode(r Record) Artifact
}
