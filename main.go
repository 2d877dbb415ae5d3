package main

import (
	"miniboard/config"
	"miniboard/models"
	"miniboard/routes"
	"miniboard/services"
	"miniboard/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{})

	// Promote configured admin usernames once at boot; no API grants admin.
	if err := services.NewIdentityService(db, cfg.AdminUsernames).BootstrapAdmins(); err != nil {
		utils.Sugar.Fatalf("admin bootstrap failed: %v", err)
	}

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
