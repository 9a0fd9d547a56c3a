package schedule

import (
	"dayflow/core/config"
	"dayflow/modules/schedule/controller"
	"dayflow/modules/schedule/repository"
	"dayflow/modules/schedule/router"
	"dayflow/modules/schedule/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the schedule module and registers routes. The snapshot
// repository is returned so the server can run the retention sweep on it.
func Init(e *echo.Echo, cfg *config.Config) repository.SnapshotRepositoryInterface {
	repo := repository.NewSnapshotRepository()
	svc := service.NewScheduleService(repo, cfg.Engine)
	ctrl := controller.NewScheduleController(svc)
	rtr := router.NewScheduleRouter(ctrl)

	rtr.Setup(e)
	return repo
}
