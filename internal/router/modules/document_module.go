package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nexcruit/ats-backend/internal/interface/http"
)

// DocumentModule registers templates, standalone offer lookups, assessments,
// comments and pipeline sections.
type DocumentModule struct {
	Templates *handlers.TemplateHandler
	Offers    *handlers.OfferHandler
	Feedback  *handlers.FeedbackHandler
	Guard     Guard
}

func (m *DocumentModule) Register(rg *gin.RouterGroup) {
	t := m.Guard.Protected(rg, "/templates")
	{
		t.GET("", m.Templates.List)
		t.POST("", m.Templates.Create)
		t.GET("/:id", m.Templates.Get)
		t.PUT("/:id", m.Templates.Update)
		t.DELETE("/:id", m.Templates.Delete)
	}

	m.Guard.Protected(rg, "/offers").GET("/:id", m.Offers.Get)

	a := m.Guard.Protected(rg, "/assessments")
	{
		a.GET("/:id", m.Feedback.GetAssessment)
		a.POST("/:id/assessment", m.Feedback.AddAssessment)
	}

	c := m.Guard.Protected(rg, "/comments")
	{
		c.POST("/:id/comment", m.Feedback.AddComment)
		c.GET("/:id/comments", m.Feedback.ListComments)
	}

	s := m.Guard.Protected(rg, "/sections")
	{
		s.GET("", m.Feedback.GetSections)
		s.POST("", m.Feedback.SaveSections)
	}
}
