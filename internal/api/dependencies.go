package api

import (
	"os"

	"panduankota/backend/internal/common"
	"panduankota/backend/internal/db"
	"panduankota/backend/internal/db/repositories"
	"panduankota/backend/internal/metrics"
	"panduankota/backend/internal/services"
)

type Repositories struct {
	Profiles  *repositories.ProfileRepository
	Warnings  *repositories.WarningRepository
	Guides    *repositories.GuideRepository
	Favorites *repositories.FavoriteRepository
	Posts     *repositories.PostRepository
	Comments  *repositories.CommentRepository
	Votes     *repositories.VoteRepository
	Reports   *repositories.ReportRepository
}

type Services struct {
	Cache      common.CacheInterface
	Sessions   *common.SessionService
	Account    *services.AccountService
	Moderation *services.ModerationService
	Guides     *services.GuideService
	Discussion *services.DiscussionService
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
}

func InitDependencies(metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {

	repos := &Repositories{
		Profiles:  repositories.NewProfileRepository(db.PgDB, db.DB),
		Warnings:  repositories.NewWarningRepository(db.PgDB),
		Guides:    repositories.NewGuideRepository(db.PgDB, db.DB),
		Favorites: repositories.NewFavoriteRepository(db.PgDB),
		Posts:     repositories.NewPostRepository(db.PgDB, db.DB),
		Comments:  repositories.NewCommentRepository(db.PgDB),
		Votes:     repositories.NewVoteRepository(db.PgDB),
		Reports:   repositories.NewReportRepository(db.PgDB),
	}

	// Redis backs both the session store and, when configured, the board
	// cache shared across instances. Without CACHE_BACKEND=redis the board
	// cache stays in-process.
	redisClient := common.NewRedisClient()
	sessionSvc := common.NewSessionService(redisClient)

	var cacheSvc common.CacheInterface
	if os.Getenv("CACHE_BACKEND") == "redis" {
		cacheSvc = common.NewRedisCacheService(redisClient)
	} else {
		cacheSvc = common.NewCacheService(60, 600)
	}

	moderationSvc := services.NewModerationService(repos.Profiles, repos.Warnings, sessionSvc, metricsReg)

	svcs := &Services{
		Cache:      cacheSvc,
		Sessions:   sessionSvc,
		Account:    services.NewAccountService(repos.Profiles, sessionSvc, metricsReg),
		Moderation: moderationSvc,
		Guides:     services.NewGuideService(repos.Guides, repos.Favorites, repos.Profiles, metricsReg),
		Discussion: services.NewDiscussionService(
			repos.Posts, repos.Comments, repos.Votes, repos.Reports,
			repos.Profiles, moderationSvc, cacheSvc, metricsReg,
		),
	}

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
	}, nil
}
