package thumbnail

import (
	"fmt"
	"strings"

	"github.com/empowerment-ai/thumbforge/internal/models"
)

const (
	resolutionClause = "Create a YouTube thumbnail image, exactly 1280x720 pixels, 16:9 landscape."

	compositionRules = "Composition rules: one dominant focal point, rule-of-thirds framing, strong contrast between subject and background, colors that stay vivid at small sizes, clear depth separation between foreground and background."

	exclusionClause = "Do not render small unreadable text, cluttered backgrounds, watermarks, or any element in the bottom-right corner (a duration badge covers it)."
)

// buildConceptPrompt assembles the image prompt for one concept. Clause order
// is fixed so outputs stay comparable across concepts of one analysis.
func buildConceptPrompt(concept models.ThumbnailConcept, analysis *models.VideoAnalysis, faceDescription string) string {
	var sb strings.Builder
	sb.WriteString(resolutionClause)
	if concept.VisualStyle != "" {
		fmt.Fprintf(&sb, " Style: %s.", concept.VisualStyle)
	}

	fmt.Fprintf(&sb, "\n\nScene: %s", strings.TrimSpace(concept.Description))

	if faceDescription != "" {
		fmt.Fprintf(&sb, "\n\nThe scene features this specific person: %s.", faceDescription)
	} else {
		sb.WriteString("\n\nThe scene features an expressive person as the main subject.")
	}
	expression := concept.FaceExpression
	if expression == "" {
		expression = analysis.TargetEmotion
	}
	if expression != "" {
		fmt.Fprintf(&sb, " Their expression: %s.", expression)
	}
	sb.WriteString(" The face occupies 30-40% of the frame.")

	mood := concept.Mood
	if mood == "" {
		mood = analysis.Mood
	}
	if mood != "" {
		fmt.Fprintf(&sb, "\n\nMood: %s.", mood)
	}
	if len(analysis.ColorPalette) > 0 {
		fmt.Fprintf(&sb, " Color palette: %s.", strings.Join(analysis.ColorPalette, ", "))
	}

	sb.WriteString("\n\n")
	sb.WriteString(compositionRules)

	if concept.TextOverlay != "" {
		fmt.Fprintf(&sb, "\n\nRender the text %q in large bold letters integrated into the composition.", concept.TextOverlay)
	}

	sb.WriteString("\n\n")
	sb.WriteString(exclusionClause)
	return sb.String()
}

// buildCustomPrompt wraps a caller-written prompt with the same resolution
// preamble and composition/exclusion rules the concept path uses.
func buildCustomPrompt(customPrompt string) string {
	var sb strings.Builder
	sb.WriteString(resolutionClause)
	sb.WriteString("\n\n")
	sb.WriteString(strings.TrimSpace(customPrompt))
	sb.WriteString("\n\n")
	sb.WriteString(compositionRules)
	sb.WriteString("\n\n")
	sb.WriteString(exclusionClause)
	return sb.String()
}
