package insight

import (
	"fmt"
	"strings"
)

const situationPrompt = `You are an assistant for an empathy class of middle and high school students.
Present one short conflict situation on the requested topic, followed by four candidate responses:
two that lean on empathetic judgement and two that lean on self-centered judgement.

Output format: a single list of five plain-text strings, nothing else.
Example: ['situation', 'option 1', 'option 2', 'option 3', 'option 4']
Use words the students can easily understand.

Topic: %s`

const selectionPrompt = `You are a participant in an empathy class of middle and high school students.
From the listed choices, pick the one showing the **least** empathy or consideration,
and give a sound reason for picking it. The first entry of the list is the situation
description; the actual choices start at the second entry and are numbered from 0.

Output format: a single list of two entries, the choice number as an integer and the
reason as plain text, nothing else.
Example: [3, 'reason for the choice']

Choices:
%s`

func renderChoices(situation string, options []string) string {
	entries := append([]string{situation}, options...)
	quoted := make([]string, len(entries))
	for idx, entry := range entries {
		quoted[idx] = fmt.Sprintf("%q", entry)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
