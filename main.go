package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"

	"hr-insight/database"
	"hr-insight/middleware"
	"hr-insight/ml"
	"hr-insight/routes"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("pas de .env trouvé")
	}

	database.ConnectDB()

	// Les deux artefacts sont obligatoires : pas de modèle, pas de serveur.
	modelDir := os.Getenv("MODEL_DIR")
	if modelDir == "" {
		modelDir = "./artifacts"
	}
	models, err := ml.Load(modelDir)
	if err != nil {
		log.Fatalf("chargement des modèles impossible: %v", err)
	}
	log.Println("🧠 Pipelines attrition et churn chargés depuis", modelDir)

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})

	// CORS
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	middleware.InitSessionStore()

	routes.SetupAuthRoutes(app)
	routes.SetupPredictionRoutes(app, models)
	routes.SetupRecordRoutes(app)
	routes.SetupAPIRoutes(app, models)

	// Images servies en statique, comme le reste du site est rendu côté serveur
	app.Static("/images", "./public/images")

	port := os.Getenv("PORT")
	if port == "" {
		port = "3030"
	}
	log.Println("🚀 Serveur sur http://localhost:" + port)
	log.Fatal(app.Listen(":" + port))
}
