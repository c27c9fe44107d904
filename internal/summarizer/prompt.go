package summarizer

import "strings"

// Style selects a summary template.
type Style string

const (
	StyleBrief      Style = "brief"
	StyleDetailed   Style = "detailed"
	StyleStudyGuide Style = "study_guide"
)

var templates = map[Style]string{
	StyleBrief: `Provide a brief summary of the following text in 3-5 sentences.
Focus on the main points and key takeaways.`,
	StyleDetailed: `Provide a detailed summary of the following text.
Include all important concepts, examples, and explanations.
Format it as clear bullet points or paragraphs.`,
	StyleStudyGuide: `Create a study guide from the following text for college students.
Include:
- Key concepts and definitions
- Important points to remember
- Examples if mentioned
- Potential exam questions

Format it clearly with sections and bullet points.`,
}

// Styles lists the known styles in display order.
func Styles() []Style {
	return []Style{StyleBrief, StyleDetailed, StyleStudyGuide}
}

// ParseStyle maps a user supplied tag to a Style. Unknown tags become brief.
func ParseStyle(s string) Style {
	style := Style(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := templates[style]; ok {
		return style
	}
	return StyleBrief
}

// Label is the human readable name of the style.
func (s Style) Label() string {
	switch s {
	case StyleDetailed:
		return "Detailed"
	case StyleStudyGuide:
		return "Study guide"
	default:
		return "Brief"
	}
}

// BuildPrompt returns the full request text for style.
func BuildPrompt(text string, style Style) string {
	tmpl, ok := templates[style]
	if !ok {
		tmpl = templates[StyleBrief]
	}
	return tmpl + "\n\nText to summarize:\n" + text
}
