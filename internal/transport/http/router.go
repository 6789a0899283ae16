package http

import (
	"net/http"

	"practice-quiz-service/internal/app"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterOptions configures the HTTP surface.
type RouterOptions struct {
	// StaticDir, when set, is served for every unmatched path.
	StaticDir string
	// HistoryLimit caps /api/results responses.
	HistoryLimit int
}

// NewRouter wires the catalog, admin and play endpoints.
func NewRouter(quizzes *app.QuizService, admin *app.AdminService, play *PlayHandler, opts RouterOptions) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type"},
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/ws/play", play.ServeWS)

	api := NewAPIHandler(quizzes, admin, opts.HistoryLimit)
	group := r.Group("/api")
	{
		group.GET("/catalog", api.Catalog)
		group.GET("/quiz-sets/:id", api.QuizSet)
		group.GET("/results/:id", api.Results)
		group.POST("/create-quiz", api.CreateQuiz)
		group.POST("/delete-quiz", api.DeleteQuiz)
	}

	if opts.StaticDir != "" {
		r.NoRoute(gin.WrapH(http.FileServer(http.Dir(opts.StaticDir))))
	}
	return r
}
