// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package restructure

import (
	"bytes"
	"text/template"
)

// restructurePromptTmpl is the prompt sent to the model with the raw
// extracted text. It asks for a fixed section layout so the downstream
// block converter sees predictable header lines.
var restructurePromptTmpl = template.Must(template.New("restructure").Parse(`You are a helpful assistant. Please take the following extracted text from a PDF and reorganize it into clearly defined sections: Abstract, Background, Methodology, Results, Discussion, and Conclusion. Make sure each section has a clear heading, structure, and is clean, readable text. Methodology should be split into materials (list of materials and sources) and methods (numbered list of steps for each method with clear references to equipment used and parameters if possible

{{.RawText}}`))

// renderPrompt executes the restructure prompt template with the raw text.
func renderPrompt(rawText string) (string, error) {
	var buf bytes.Buffer
	if err := restructurePromptTmpl.Execute(&buf, struct{ RawText string }{RawText: rawText}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
