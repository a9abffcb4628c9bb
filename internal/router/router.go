package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techwayfit/twf-pulse-sub000/internal/handler"
	"github.com/techwayfit/twf-pulse-sub000/pkg/constants"
)

// New builds the HTTP router.
func New(
	sessions *handler.SessionHandler,
	activities *handler.ActivityHandler,
	participants *handler.ParticipantHandler,
	responses *handler.ResponseHandler,
	dashboards *handler.DashboardHandler,
	eventsWS *handler.EventWSHandler,
	health *handler.HealthHandler,
) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET(constants.PathHealth, health.Health)
	r.GET(constants.PathReady, health.Ready)

	s := r.Group("/sessions")
	{
		s.POST("", sessions.CreateSession)
		s.GET("/by-code/:code", sessions.GetSessionByCode)
		s.GET("/:id", sessions.GetSession)
		s.PATCH("/:id", sessions.UpdateSession)
		s.PUT("/:id/status", sessions.SetStatus)
		s.PUT("/:id/settings", sessions.UpdateSettings)
		s.PUT("/:id/join-form", sessions.UpdateJoinForm)
		s.PUT("/:id/current-activity", sessions.SetCurrentActivity)
		s.POST("/:id/insights", sessions.PublishInsight)
		s.POST("/:id/agenda/suggestions", activities.SuggestAgenda)

		s.GET("/:id/activities", activities.GetAgenda)
		s.POST("/:id/activities", activities.AddActivity)
		s.POST("/:id/activities/reorder", activities.ReorderActivities)
		s.PATCH("/:id/activities/:activity_id", activities.UpdateActivity)
		s.DELETE("/:id/activities/:activity_id", activities.DeleteActivity)
		s.POST("/:id/activities/:activity_id/open", activities.OpenActivity)
		s.POST("/:id/activities/:activity_id/reopen", activities.ReopenActivity)
		s.POST("/:id/activities/:activity_id/close", activities.CloseActivity)

		s.POST("/:id/participants", participants.Join)
		s.GET("/:id/participants", participants.GetBySession)

		s.POST("/:id/activities/:activity_id/responses", responses.Submit)
		s.GET("/:id/activities/:activity_id/responses", responses.GetByActivity)
		s.GET("/:id/participants/:participant_id/responses", responses.GetByParticipant)

		s.GET("/:id/activities/:activity_id/dashboards/poll", dashboards.Poll)
		s.GET("/:id/activities/:activity_id/dashboards/wordcloud", dashboards.WordCloud)
		s.GET("/:id/activities/:activity_id/dashboards/rating", dashboards.Rating)
		s.GET("/:id/activities/:activity_id/dashboards/feedback", dashboards.Feedback)
	}

	// WebSocket: /ws/sessions/:code/:subscriber_id
	r.GET("/ws/sessions/:code/:subscriber_id", eventsWS.ServeWS)

	return r
}
