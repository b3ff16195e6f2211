package resume

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	text := strings.Join([]string{
		"Jane Doe",
		"Skills: javascript, JavaScript, React, node.js, Java, python",
		"B.Sc. from State University",
		"Master of Science, Tech College",
		"Worked at Acme",
	}, "\n")

	s := Summarize(text)

	assert.Equal(t, []string{"JavaScript", "React", "Node.js", "Java", "Python"}, s.Skills)
	assert.Equal(t, 75, s.Score)
	assert.Equal(t, []string{"B.Sc. from State University", "Master of Science, Tech College"}, s.Education)
	assert.Empty(t, s.Experience)
	assert.NotNil(t, s.Experience)
}

func TestSummarizeCapsScoreAndEducation(t *testing.T) {
	text := "JavaScript TypeScript React Node.js Java Python MongoDB\n" +
		strings.Repeat("University line\n", 8)

	s := Summarize(text)

	assert.Len(t, s.Skills, 7)
	assert.Equal(t, 100, s.Score)
	assert.Len(t, s.Education, 5)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize("")
	assert.Empty(t, s.Skills)
	assert.Equal(t, 0, s.Score)
	assert.NotNil(t, s.Education)
}

func TestParsePlainTextAndImages(t *testing.T) {
	p := NewParser()

	s, err := p.Parse(context.Background(), strings.NewReader("Python and MongoDB"), "text/plain; charset=utf-8")
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "MongoDB"}, s.Skills)
	assert.Equal(t, 30, s.Score)

	s, err = p.Parse(context.Background(), strings.NewReader("\x89PNG"), "image/png")
	require.NoError(t, err)
	assert.Empty(t, s.Skills)
}
