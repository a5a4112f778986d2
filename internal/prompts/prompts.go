package prompts

import (
	"fmt"
	"strings"
)

// HaikuSystemPrompt fixes the form and register of every generated poem.
const HaikuSystemPrompt = `Create a traditional haiku following 5-7-5 syllable structure.
Focus on imagery, nature, and emotion.`

// haikuUserTemplate is interpolated with the user's topic.
const haikuUserTemplate = "Create a haiku about %s."

// HaikuUserPrompt returns the user instruction for a topic.
func HaikuUserPrompt(topic string) string {
	return fmt.Sprintf(haikuUserTemplate, strings.TrimSpace(topic))
}
