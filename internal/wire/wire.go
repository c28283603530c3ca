package wire

import (
	"Moments/internal/api"
	"Moments/internal/api/handler"
	"Moments/internal/job"
	"Moments/internal/pkg/cron"
	"Moments/internal/repository"
	"Moments/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepository(db)
	tagRepo := repository.NewTagRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	postService := service.NewPostService(postRepo, likeRepo)
	tagService := service.NewTagService(tagRepo)

	handlers := &api.HandlersGroup{
		PostHandler: handler.NewPostHandler(postService, tagService),
		TagHandler:  handler.NewTagHandler(tagService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewMediaCleanupJob(postRepo))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
