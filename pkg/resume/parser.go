package resume

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"code.sajari.com/docconv"
)

// ErrUnreadable means no text could be extracted from a document format that should carry some.
var ErrUnreadable = errors.New("resume could not be parsed")

var (
	skillPattern     = regexp.MustCompile(`(?i)JavaScript|TypeScript|React|Node\.js|Java|Python|MongoDB`)
	educationPattern = regexp.MustCompile(`(?i)University|College|Bachelor|Master`)
)

// canonical spelling for every keyword the skill pattern can match
var canonicalSkills = map[string]string{
	"javascript": "JavaScript",
	"typescript": "TypeScript",
	"react":      "React",
	"node.js":    "Node.js",
	"java":       "Java",
	"python":     "Python",
	"mongodb":    "MongoDB",
}

const (
	pointsPerSkill = 15
	maxScore       = 100
	maxEducation   = 5
)

type Experience struct {
	Company  string `json:"company"`
	Role     string `json:"role"`
	Duration string `json:"duration"`
}

// Summary is the keyword-level digest returned alongside a new candidate.
type Summary struct {
	Skills     []string     `json:"skills"`
	Score      int          `json:"score"`
	Education  []string     `json:"education"`
	Experience []Experience `json:"experience"`
}

type Parser struct{}

func NewParser() *Parser { return &Parser{} }

// Parse extracts text from r according to its sniffed MIME type and summarizes it.
// Images carry no extractable text and yield an empty summary.
func (p *Parser) Parse(ctx context.Context, r io.Reader, mimeType string) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	text, err := extractText(r, mimeType)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(text), nil
}

func extractText(r io.Reader, mimeType string) (string, error) {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return "", nil
	case strings.HasPrefix(mimeType, "text/plain"):
		b, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		return string(b), nil
	default:
		res, err := docconv.Convert(r, mimeType, false)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnreadable, err)
		}
		return res.Body, nil
	}
}

// Summarize scores resume text by keyword matching.
func Summarize(text string) Summary {
	seen := map[string]bool{}
	skills := []string{}
	for _, m := range skillPattern.FindAllString(text, -1) {
		key := strings.ToLower(strings.TrimSpace(m))
		if seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, canonicalSkills[key])
	}

	score := len(skills) * pointsPerSkill
	if score > maxScore {
		score = maxScore
	}

	education := []string{}
	for _, line := range strings.Split(text, "\n") {
		if len(education) == maxEducation {
			break
		}
		if educationPattern.MatchString(line) {
			education = append(education, strings.TrimSpace(line))
		}
	}

	return Summary{
		Skills:     skills,
		Score:      score,
		Education:  education,
		Experience: []Experience{},
	}
}
