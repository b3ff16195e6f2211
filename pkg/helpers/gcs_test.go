package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURLEscapesSegments(t *testing.T) {
	assert.Equal(t,
		"https://storage.googleapis.com/ats-uploads/resumes/Jane%20Doe%20CV.pdf",
		PublicURL("ats-uploads", "resumes/Jane Doe CV.pdf"))
	assert.Equal(t,
		"https://storage.googleapis.com/ats-uploads/assessments/a.png",
		PublicURL("ats-uploads", "assessments/a.png"))
}

func TestObjectPathReversesPublicURL(t *testing.T) {
	p, ok := ObjectPath("ats-uploads", PublicURL("ats-uploads", "resumes/Jane Doe CV.pdf"))
	assert.True(t, ok)
	assert.Equal(t, "resumes/Jane Doe CV.pdf", p)

	for _, raw := range []string{
		"https://storage.googleapis.com/other-bucket/resumes/a.pdf",
		"https://storage.googleapis.com/ats-uploads/",
		"/uploads/resumes/a.pdf",
	} {
		_, ok := ObjectPath("ats-uploads", raw)
		assert.False(t, ok, raw)
	}
}
