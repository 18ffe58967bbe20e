package analysis

import (
	"fmt"
	"strings"
)

const analysisJSONShape = `{
  "title": "video title",
  "topic": "main topic in a few words",
  "hook": "the single most attention-grabbing idea",
  "mood": "overall mood, e.g. energetic, calm, dramatic",
  "keyMoments": ["up to 5 short key moments"],
  "visualElements": ["up to 5 concrete objects or scenes worth showing"],
  "textSuggestions": ["up to 5 short overlay texts, max 6 words each"],
  "colorPalette": ["#RRGGBB", "#RRGGBB", "#RRGGBB"],
  "targetEmotion": "emotion the thumbnail should trigger in a viewer",
  "concepts": [
    {
      "description": "full scene description for an image generator",
      "textOverlay": "overlay text, max 6 words",
      "mood": "concept mood",
      "visualStyle": "photorealistic | illustration | 3d render | cinematic",
      "faceExpression": "expression for a person in frame, e.g. shocked, smiling"
    }
  ]
}`

func contentAnalysisPrompt(transcript, title, author string) string {
	var sb strings.Builder
	sb.WriteString("You are a YouTube thumbnail strategist. Analyze the video content below and design thumbnail concepts that maximize click-through rate.\n\n")
	if title != "" {
		fmt.Fprintf(&sb, "Video title: %s\n", title)
	}
	if author != "" {
		fmt.Fprintf(&sb, "Channel: %s\n", author)
	}
	if transcript != "" {
		fmt.Fprintf(&sb, "\nTranscript (may be truncated):\n%s\n", truncateRunes(transcript, maxTranscriptChars))
	}
	sb.WriteString("\nRespond with ONLY a JSON object in exactly this shape, no markdown, no commentary:\n")
	sb.WriteString(analysisJSONShape)
	sb.WriteString("\n\nProvide exactly 4 concepts, each distinct in style and composition.")
	return sb.String()
}

func descriptionAnalysisPrompt(description string) string {
	var sb strings.Builder
	sb.WriteString("You are a YouTube thumbnail strategist. A creator described their planned video below. Design thumbnail concepts that maximize click-through rate.\n\n")
	fmt.Fprintf(&sb, "Video description:\n%s\n", description)
	sb.WriteString("\nRespond with ONLY a JSON object in exactly this shape, no markdown, no commentary:\n")
	sb.WriteString(analysisJSONShape)
	sb.WriteString("\n\nProvide exactly 4 concepts, each distinct in style and composition.")
	return sb.String()
}

func faceAnalysisPrompt(photoCount int) string {
	return fmt.Sprintf(`You are given %d photo(s) of the same person. Produce a precise likeness description an image generator can use to render this person consistently.

Describe these attributes: face shape, skin tone, eye color, eye shape, eyebrow shape, nose shape, lip shape, hair color, hair style, facial hair, and distinguishing features (glasses, freckles, moles, dimples).

Respond with ONLY a JSON object in exactly this shape, no markdown:
{
  "description": "one flowing paragraph covering all attributes",
  "keyFeatures": ["the 3-6 most recognizable features"],
  "ageRange": "e.g. 25-35",
  "genderPresentation": "masculine | feminine | androgynous"
}`, photoCount)
}

func suggestionsPrompt(topic, mood, currentText string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Suggest %d short text overlays for a YouTube thumbnail about: %s.\n", suggestionCount, topic)
	if mood != "" {
		fmt.Fprintf(&sb, "Desired mood: %s.\n", mood)
	}
	if currentText != "" {
		fmt.Fprintf(&sb, "The creator is considering %q. Offer stronger alternatives.\n", currentText)
	}
	sb.WriteString("Each overlay must be at most 6 words, punchy, and readable at small sizes.\n")
	sb.WriteString(`Respond with ONLY a JSON array of strings, no markdown: ["...", "..."]`)
	return sb.String()
}

// truncateRunes cuts at a rune boundary so a multibyte character is never
// split mid-sequence.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
