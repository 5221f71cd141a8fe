package routes

import (
	"os"
	"strconv"
	"time"

	"hr-insight/database"
	"hr-insight/middleware"
	"hr-insight/ml"
	"hr-insight/models"
	"hr-insight/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// API JSON pour les clients programmatiques : mêmes pipelines, même store,
// auth par token au lieu de la session navigateur.
func SetupAPIRoutes(app *fiber.App, m *ml.Models) {
	pipelines = m

	api := app.Group("/api")
	api.Post("/login", apiLogin)
	api.Get("/records", middleware.JWTMiddleware, apiRecords)
	api.Get("/predictions", middleware.JWTMiddleware, apiPredictions)
	api.Post("/predict/attrition", middleware.JWTMiddleware, apiPredictAttrition)
	api.Post("/predict/churn", middleware.JWTMiddleware, apiPredictChurn)
}

type apiLoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func apiLogin(c *fiber.Ctx) error {
	var body apiLoginPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}

	user, err := database.FindUserByEmail(body.Email)
	if err != nil || !utils.CheckPassword(user.PasswordHash, body.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Email ou mot de passe invalide"})
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": user.Email,
		"name":  user.Name,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Impossible de générer le token"})
	}

	return c.JSON(fiber.Map{"token": t})
}

func apiRecords(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	employees, err := database.ListEmployees(email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur de lecture"})
	}
	return c.JSON(fiber.Map{"records": employees})
}

func apiPredictions(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	logs, err := database.ListPredictions(email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Erreur de lecture"})
	}
	return c.JSON(fiber.Map{"predictions": logs})
}

type attritionPayload struct {
	Features map[string]float64 `json:"features"`
}

func apiPredictAttrition(c *fiber.Ctx) error {
	var body attritionPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}

	names := pipelines.Attrition.Features()
	query := make([]float64, 0, len(names))
	params := make(map[string]string, len(names))
	for _, f := range names {
		v, ok := body.Features[f]
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Feature manquante: " + f})
		}
		query = append(query, v)
		params[f] = formatFloat(v)
	}

	result, err := pipelines.Attrition.Predict(query)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ref := recordPrediction(models.PredictionKindAttrition, params, result, c.Locals("email").(string))
	return c.JSON(fiber.Map{"result": result, "ref": ref})
}

func apiPredictChurn(c *fiber.Ctx) error {
	var row ml.ChurnRow
	if err := c.BodyParser(&row); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payload invalide"})
	}

	result, err := pipelines.Churn.Predict(row)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	params := map[string]string{
		"satisfaction_level":    formatFloat(row.SatisfactionLevel),
		"last_evaluation":       formatFloat(row.LastEvaluation),
		"number_project":        strconv.Itoa(row.NumberProject),
		"average_montly_hours":  strconv.Itoa(row.AverageMontlyHours),
		"time_spend_company":    strconv.Itoa(row.TimeSpendCompany),
		"work_accident":         strconv.Itoa(row.WorkAccident),
		"promotion_last_5years": strconv.Itoa(row.PromotionLast5Years),
		"department":            row.Departments,
		"salary":                row.Salary,
	}
	ref := recordPrediction(models.PredictionKindChurn, params, result, c.Locals("email").(string))
	return c.JSON(fiber.Map{"result": result, "ref": ref})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
