// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesize

import (
	"strings"
	"text/template"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// instructions maps each query type to its synthesis guidance. Exactly one
// block is rendered into the prompt, selected by the classified type.
var instructions = map[types.QueryType]string{
	types.QueryFactual: "Answer factually and precisely. Favor authoritative and " +
		"encyclopedic framing. State facts plainly and cite which source supports them.",
	types.QueryOpinion: "Present multiple viewpoints from the sources and label each " +
		"clearly as an opinion. Do not present any single viewpoint as settled fact.",
	types.QueryNews: "Foreground recency. Lead with the most recent developments, give " +
		"a brief timeline where the sources support one, and note publication dates.",
	types.QueryTechnical: "Use precise technical terminology. Explain step by step where " +
		"the question calls for a procedure, and include concrete details from the sources.",
	types.QueryGeneral: "Give a balanced overview of the topic, covering the main points " +
		"the sources agree on and noting where they differ.",
}

var synthesisPromptTmpl = template.Must(template.New("synthesis").Parse(
	`You are a research assistant answering a user's question from retrieved sources.

Question: {{.Question}}

{{.Instruction}}

Ground every claim in the numbered sources below. Refer to sources as [1], [2], and so on. If the sources do not cover part of the question, say so rather than inventing an answer.

Sources:
{{.Evidence}}

Answer:`))

type promptData struct {
	Question    string
	Instruction string
	Evidence    string
}

// buildPrompt renders the synthesis prompt for one query and its evidence
// context. Unknown query types get the general instruction block.
func buildPrompt(query types.Query, evidence string) (string, error) {
	instruction, ok := instructions[query.Type]
	if !ok {
		instruction = instructions[types.QueryGeneral]
	}

	var b strings.Builder
	err := synthesisPromptTmpl.Execute(&b, promptData{
		Question:    query.RefinedText,
		Instruction: instruction,
		Evidence:    evidence,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
