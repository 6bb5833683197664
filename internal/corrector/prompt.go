package corrector

import (
	"fmt"
	"strings"
)

// Prompt is the request payload for one correction call.
type Prompt struct {
	System string
	User   string
}

const systemInstruction = `You are a transcript correction assistant. You receive one line of an automatically generated video transcript at a time.

Tasks:
- Fix transcription errors (misheard words, wrong word boundaries)
- Fix grammar and punctuation
- Fix obvious factual slips introduced by the transcription

Rules:
- Preserve the original meaning and intent
- Keep the same language as the input
- Do not add any new information
- Use the previous corrected lines only as context; correct only the current line
- Output ONLY the corrected line, nothing else
- If the line is already correct, return it unchanged`

// BuildPrompt constructs the payload for one segment, given its text and a
// bounded window of already-corrected preceding lines (most recent last).
// Pure function, no state access.
func BuildPrompt(text string, contextLines []string) Prompt {
	if len(contextLines) == 0 {
		return Prompt{System: systemInstruction, User: text}
	}

	var b strings.Builder
	b.WriteString("Previous corrected lines:\n")
	for _, line := range contextLines {
		fmt.Fprintf(&b, "%s\n", line)
	}
	b.WriteString("\nLine to correct:\n")
	b.WriteString(text)

	return Prompt{System: systemInstruction, User: b.String()}
}
