package research

import (
	"fmt"
	"strings"

	"github.com/dowserhq/dowser/pkg/models"
)

// Prompts holds the templates for every Critic-bound prompt the engine
// builds. Each template is a fmt.Sprintf format string; see DefaultPrompts
// for the expected arguments. Empty fields fall back to the defaults, so a
// profile file may override just one template.
type Prompts struct {
	Decomposition string `yaml:"decomposition"`
	Evaluation    string `yaml:"evaluation"`
	Refinement    string `yaml:"refinement"`
	Synthesis     string `yaml:"synthesis"`
}

// decompositionPrompt instructs the Critic to split a query into subtasks.
// Args: original query.
const decompositionPrompt = `Decompose this research question into 2-6 subtasks.

Research question:
%s

Return ONLY a JSON object with this exact structure (no other text):
{
  "reasoning": "Why this decomposition covers the question",
  "subtasks": [
    {
      "id": 1,
      "query": "A self-contained, searchable question",
      "rationale": "Why this subtask is needed",
      "dependsOn": [],
      "expectedOutcome": "What a good answer looks like"
    }
  ]
}

Rules:
- Each subtask's query must stand alone; no pronouns referring to other subtasks.
- ids are integers, unique within the plan.
- dependsOn may only reference ids of EARLIER subtasks; use [] when independent.
- Add a dependency only when a subtask genuinely needs another's findings.
- A final comparison or summary subtask should depend on the subtasks it combines.`

// evaluationPrompt instructs the Critic to judge findings.
// Args: original query, subtask query, expected outcome, findings.
const evaluationPrompt = `Evaluate research findings against the question they were meant to answer.

Original research question:
%s

Subtask question:
%s

Expected outcome:
%s

Findings:
%s

Return ONLY a JSON object with this exact structure (no other text):
{
  "isSatisfactory": true,
  "qualityScore": 7,
  "gaps": ["what is missing, most important first"],
  "followUpQuestions": ["a query that would close a gap"],
  "refinedQuery": "a better version of the subtask question, or empty",
  "reasoning": "One paragraph justifying the score"
}

qualityScore is 1-10: 1-3 largely off-target, 4-6 partial, 7-8 solid, 9-10 thorough.`

// refinementPrompt is sent to the Finder on iterations after the first.
// Args: previous findings (truncated), score, reasoning, gaps, next query.
const refinementPrompt = `Your previous research attempt needs improvement.

Previous findings (may be truncated):
%s

Evaluator score: %d/10
Evaluator reasoning: %s
Identified gaps:
%s

Research this refined question, addressing the gaps above:
%s`

// synthesisPrompt instructs the Critic to merge subtask findings.
// Args: original query, aggregated findings.
const synthesisPrompt = `Combine the research findings below into one final report.

Original research question:
%s

Findings by subtask:
%s

Write a long-form, structured report that answers the original question.
Preserve every concrete fact, figure, name, and date from the findings; do not
summarize information away. Organize with headings. If sections conflict, say
so explicitly. Begin the report immediately; do not emit JSON.`

// DefaultPrompts returns the built-in prompt templates.
func DefaultPrompts() Prompts {
	return Prompts{
		Decomposition: decompositionPrompt,
		Evaluation:    evaluationPrompt,
		Refinement:    refinementPrompt,
		Synthesis:     synthesisPrompt,
	}
}

// withDefaults fills empty templates from the built-ins.
func (p Prompts) withDefaults() Prompts {
	def := DefaultPrompts()
	if p.Decomposition == "" {
		p.Decomposition = def.Decomposition
	}
	if p.Evaluation == "" {
		p.Evaluation = def.Evaluation
	}
	if p.Refinement == "" {
		p.Refinement = def.Refinement
	}
	if p.Synthesis == "" {
		p.Synthesis = def.Synthesis
	}
	return p
}

// maxFindingsInPrompt caps how much of the previous findings is replayed in
// a refinement prompt.
const maxFindingsInPrompt = 2000

func (p Prompts) decomposition(query string) string {
	return fmt.Sprintf(p.Decomposition, query)
}

func (p Prompts) evaluation(originalQuery, subtaskQuery, expectedOutcome, findings string) string {
	if expectedOutcome == "" {
		expectedOutcome = "a direct, factual answer to the subtask question"
	}
	return fmt.Sprintf(p.Evaluation, originalQuery, subtaskQuery, expectedOutcome, findings)
}

func (p Prompts) refinement(prevFindings string, verdict models.Verdict, nextQuery string) string {
	gaps := "- none listed"
	if len(verdict.Gaps) > 0 {
		gaps = "- " + strings.Join(verdict.Gaps, "\n- ")
	}
	return fmt.Sprintf(p.Refinement,
		truncate(prevFindings, maxFindingsInPrompt),
		verdict.QualityScore,
		verdict.Reasoning,
		gaps,
		nextQuery)
}

func (p Prompts) synthesis(originalQuery, aggregate string) string {
	return fmt.Sprintf(p.Synthesis, originalQuery, aggregate)
}

// truncate shortens s to at most n bytes, marking the cut.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "\n... (truncated)"
}
