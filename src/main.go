package main

import (
	"fmt"
	"log"
	"net/url"
	"os"

	"Backend-Bioattend-003/src/database"
	"Backend-Bioattend-003/src/jobs"
	"Backend-Bioattend-003/src/routes"
	"Backend-Bioattend-003/src/services/attendance"
	"Backend-Bioattend-003/src/services/candidates"
	"Backend-Bioattend-003/src/services/enrollment"
	"Backend-Bioattend-003/src/services/matcher"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
)

func main() {

	err := database.ConnectMongoDB()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	database.InitRedis()
	database.InitAsynq()

	// wire the biometric engine: one client, one population cache, both
	// matchers share them
	cfg := matcher.LoadConfig()
	matcherURI := os.Getenv("MATCHER_URI")
	if matcherURI == "" {
		matcherURI = "http://localhost:8000"
	}
	client := matcher.NewClient(matcherURI, cfg.Timeout)
	cache := matcher.NewPopulationCache(cfg.CacheTTL, candidates.ListAll)

	attendance.Init(matcher.NewIdentityMatcher(client, cache, cfg))
	enrollment.Init(matcher.NewDuplicateDetector(client, cache, cfg), cache, cfg.MinCaptureQuality)

	go jobs.RunWorker()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	routes.InitRoutes(app)

	appURI := os.Getenv("APP_URI")
	if appURI == "" {
		appURI = "8888"
	}

	log.Println("Server is running on port " + appURI)
	err = app.Listen(fmt.Sprintf(":%s", url.PathEscape(appURI)))
	if err != nil {
		log.Fatal(err)
	}
}
