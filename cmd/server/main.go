package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rustlingbird/chirprack/auth"
	"github.com/rustlingbird/chirprack/content"
	"github.com/rustlingbird/chirprack/reaction"
	"github.com/rustlingbird/chirprack/server"
	"github.com/rustlingbird/chirprack/utils"
	"github.com/rustlingbird/chirprack/utils/dotenv"
	. "github.com/rustlingbird/chirprack/utils/log"
)

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to database: ", err)
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		Log.Fatal("fail to migrate database: ", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		Log.Fatal("JWT_SECRET must be set")
	}
	issuer := auth.NewTokenIssuer(secret)

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())

	server.New(
		auth.NewGateway(db, issuer),
		content.NewStore(db),
		reaction.NewLedger(db),
	).Register(router, issuer)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	Log.Info("api server starts up")
	router.Run(":" + port)
}
