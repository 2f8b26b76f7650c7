package driver

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"cinder/internal/diag"
	"cinder/internal/source"
)

// Standard-json is the batch interface for tooling: a single JSON request
// describing sources in, a single JSON response with diagnostics out.
// Malformed requests come back as regular errors in the response, never as
// a process failure.

// StandardInput is the request shape.
type StandardInput struct {
	Language string                    `json:"language"`
	Sources  map[string]StandardSource `json:"sources"`
	Settings StandardSettings          `json:"settings"`
}

type StandardSource struct {
	Content string `json:"content"`
}

type StandardSettings struct {
	MaxDiagnostics int `json:"maxDiagnostics"`
}

// StandardOutput is the response shape.
type StandardOutput struct {
	Errors  []StandardError               `json:"errors,omitempty"`
	Sources map[string]StandardSourceInfo `json:"sources"`
}

type StandardSourceInfo struct {
	ID uint32 `json:"id"`
}

// StandardError mirrors one diagnostic.
type StandardError struct {
	SourceLocation     *StandardLocation  `json:"sourceLocation,omitempty"`
	SecondaryLocations []StandardLocation `json:"secondarySourceLocations,omitempty"`
	Type               string             `json:"type"`
	Component          string             `json:"component"`
	Severity           string             `json:"severity"`
	ErrorCode          string             `json:"errorCode"`
	Message            string             `json:"message"`
	FormattedMessage   string             `json:"formattedMessage"`
}

type StandardLocation struct {
	File    string `json:"file"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Message string `json:"message,omitempty"`
}

// LanguageName is the only accepted "language" value.
const LanguageName = "Cinder"

// StandardJSON parses raw request bytes and runs the check pipeline over
// every source. The error return is reserved for response marshaling
// failures; everything else is reported inside the response.
func StandardJSON(raw []byte) ([]byte, error) {
	out := standardJSON(raw)
	return json.MarshalIndent(out, "", "  ")
}

func standardJSON(raw []byte) StandardOutput {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return inputError(diag.JSONBadInput, "invalid JSON: "+err.Error())
	}
	if msg, ok := checkKeys(top, "language", "sources", "settings"); !ok {
		return inputError(diag.JSONUnknownKey, msg)
	}

	var input StandardInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return inputError(diag.JSONBadInput, "malformed request: "+err.Error())
	}
	if input.Language != LanguageName {
		return inputError(diag.JSONBadInput,
			fmt.Sprintf("unsupported language %q, expected %q", input.Language, LanguageName))
	}
	if len(input.Sources) == 0 {
		return inputError(diag.JSONMissingField, "no sources provided")
	}
	if msg, ok := checkSourceKeys(top["sources"]); !ok {
		return inputError(diag.JSONUnknownKey, msg)
	}

	// Deterministic processing order regardless of map iteration.
	names := make([]string, 0, len(input.Sources))
	for name := range input.Sources {
		names = append(names, name)
	}
	sort.Strings(names)

	fileSet := source.NewFileSet()
	out := StandardOutput{Sources: make(map[string]StandardSourceInfo, len(names))}
	for _, name := range names {
		id := fileSet.AddVirtual(name, []byte(input.Sources[name].Content))
		out.Sources[name] = StandardSourceInfo{ID: uint32(id)}

		bag := CheckSource(fileSet, id, maxOrDefault(input.Settings.MaxDiagnostics))
		for _, d := range bag.Items() {
			out.Errors = append(out.Errors, toStandardError(fileSet, name, d))
		}
	}
	return out
}

func maxOrDefault(n int) int {
	if n <= 0 {
		return defaultMaxDiagnostics
	}
	return n
}

func checkKeys(obj map[string]json.RawMessage, allowed ...string) (string, bool) {
	for key := range obj {
		found := false
		for _, a := range allowed {
			if key == a {
				found = true
			}
		}
		if !found {
			return fmt.Sprintf("unknown key %q", key), false
		}
	}
	return "", true
}

func checkSourceKeys(raw json.RawMessage) (string, bool) {
	if raw == nil {
		return "", true
	}
	var sources map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sources); err != nil {
		return "sources must map names to objects: " + err.Error(), false
	}
	for name, src := range sources {
		if msg, ok := checkKeys(src, "content"); !ok {
			return fmt.Sprintf("source %q: %s", name, msg), false
		}
		if _, ok := src["content"]; !ok {
			return fmt.Sprintf("source %q: missing content", name), false
		}
	}
	return "", true
}

func inputError(code diag.Code, msg string) StandardOutput {
	return StandardOutput{
		Sources: map[string]StandardSourceInfo{},
		Errors: []StandardError{{
			Type:             "JSONError",
			Component:        "general",
			Severity:         "error",
			ErrorCode:        code.String(),
			Message:          msg,
			FormattedMessage: msg,
		}},
	}
}

func toStandardError(fileSet *source.FileSet, name string, d diag.Diagnostic) StandardError {
	e := StandardError{
		Type:             errorType(d.Code),
		Component:        "general",
		Severity:         strings.ToLower(d.Severity.String()),
		ErrorCode:        d.Code.String(),
		Message:          d.Message,
		FormattedMessage: formatMessage(fileSet, name, d),
	}
	if !d.Primary.Empty() {
		e.SourceLocation = &StandardLocation{
			File:  name,
			Start: int(d.Primary.Start),
			End:   int(d.Primary.End),
		}
	}
	for _, n := range d.Notes {
		e.SecondaryLocations = append(e.SecondaryLocations, StandardLocation{
			File:    name,
			Start:   int(n.Span.Start),
			End:     int(n.Span.End),
			Message: n.Msg,
		})
	}
	return e
}

func errorType(code diag.Code) string {
	switch {
	case code >= 3000 && code < 4000:
		return "ControlFlowError"
	case code >= 2000 && code < 3000:
		return "ParserError"
	case code >= 1000 && code < 2000:
		return "LexerError"
	default:
		return "Error"
	}
}

func formatMessage(fileSet *source.FileSet, name string, d diag.Diagnostic) string {
	start, _ := fileSet.Resolve(d.Primary)
	return fmt.Sprintf("%s:%d:%d: %s", name, start.Line, start.Col, d.Message)
}
