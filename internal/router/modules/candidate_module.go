package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/nexcruit/ats-backend/internal/interface/http"
)

// CandidateModule owns /candidates and the resources nested under a candidate.
type CandidateModule struct {
	Candidates *handlers.CandidateHandler
	Letters    *handlers.LetterHandler
	Offers     *handlers.OfferHandler
	Feedback   *handlers.FeedbackHandler
	Guard      Guard
}

func (m *CandidateModule) Register(rg *gin.RouterGroup) {
	g := m.Guard.Protected(rg, "/candidates")
	{
		g.POST("", m.Candidates.Create)
		g.GET("", m.Candidates.List)
		g.GET("/:id", m.Candidates.Get)
		g.PUT("/:id", m.Candidates.Update)
		g.DELETE("/:id", m.Candidates.Delete)
		g.POST("/:id/background", m.Candidates.BackgroundCheck)

		g.POST("/:id/assessments", m.Feedback.AddAssessment)
		g.GET("/:id/assessments", m.Feedback.ListAssessments)

		g.POST("/:id/letters", m.Letters.Create)
		g.GET("/:id/letters", m.Letters.List)
		g.GET("/:id/letters/:letterId", m.Letters.Get)
		g.POST("/:id/letters/:letterId/send", m.Letters.Send)

		g.POST("/:id/offers", m.Offers.Create)
		g.GET("/:id/offers", m.Offers.List)
	}
}
