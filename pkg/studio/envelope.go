package studio

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"github.com/matzehuels/dashbridge/pkg/errors"
)

// cdataPattern matches the first CDATA section, non-greedy.
var cdataPattern = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)

// envelopeTemplate is the markup wrapper used for deployment. The JSON body
// is written verbatim between the CDATA markers.
const envelopeTemplate = `<dashboard version="2" id="%s">
  <definition><![CDATA[
%s
]]></definition>
</dashboard>
`

// ParseEnvelope extracts the JSON definition from the first
// <![CDATA[ ... ]]> section of markup and decodes it with [Parse].
//
// Only the first section is considered. If markup holds no CDATA section,
// ParseEnvelope fails with [errors.ErrCodeMissingEnvelope]; otherwise it
// returns whatever Parse returns for the section body.
func ParseEnvelope(markup []byte) (*Dashboard, error) {
	m := cdataPattern.FindSubmatch(markup)
	if m == nil {
		return nil, errors.New(errors.ErrCodeMissingEnvelope, "no CDATA section found")
	}
	return Parse(m[1])
}

// ExtractEnvelope returns the raw body of the first CDATA section.
func ExtractEnvelope(markup []byte) ([]byte, error) {
	m := cdataPattern.FindSubmatch(markup)
	if m == nil {
		return nil, errors.New(errors.ErrCodeMissingEnvelope, "no CDATA section found")
	}
	return m[1], nil
}

// WrapEnvelope embeds jsonText verbatim inside the markup wrapper. The id is
// escaped as an attribute value.
//
// jsonText is not escaped: a "]]>" sequence inside it terminates the CDATA
// section early and corrupts the envelope. Callers that cannot rule this out
// should check with [EnvelopeSafe] first.
func WrapEnvelope(jsonText, id string) string {
	var esc bytes.Buffer
	_ = xml.EscapeText(&esc, []byte(id)) // writes to a bytes.Buffer never fail
	return fmt.Sprintf(envelopeTemplate, esc.String(), jsonText)
}

// EnvelopeSafe reports whether jsonText can be wrapped without corrupting
// the CDATA section.
func EnvelopeSafe(jsonText string) bool {
	return !strings.Contains(jsonText, "]]>")
}

// Envelope serializes d and wraps it in the markup envelope.
//
// Unlike [WrapEnvelope], the output is always well formed: a "]]>" inside a
// JSON string is written as "]]\u003e", which decodes to the same value.
func Envelope(d *Dashboard, id string) (string, error) {
	text, err := Serialize(d)
	if err != nil {
		return "", err
	}
	return WrapEnvelope(strings.ReplaceAll(text, "]]>", `]]\u003e`), id), nil
}
