package app

import (
	"gorm.io/gorm"

	userrepo "github.com/waliet/waliet-backend/internal/data/repos/user"
	"github.com/waliet/waliet-backend/internal/platform/logger"
)

type Repos struct {
	User          userrepo.UserRepo
	SellerProfile userrepo.SellerProfileRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:          userrepo.NewUserRepo(db, log),
		SellerProfile: userrepo.NewSellerProfileRepo(db, log),
	}
}
