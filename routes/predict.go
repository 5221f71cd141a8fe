package routes

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"hr-insight/database"
	"hr-insight/middleware"
	"hr-insight/ml"
	"hr-insight/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Pipelines chargés une fois dans main, immuables ensuite.
var pipelines *ml.Models

func SetupPredictionRoutes(app *fiber.App, m *ml.Models) {
	pipelines = m

	app.Get("/attrition_prediction", showAttritionForm)
	app.Post("/attrition_predict", attritionPredict)
	app.Get("/attrition_result", attritionResult)

	app.Get("/churn_prediction", showChurnForm)
	app.Post("/churn_predict", churnPredict)
	app.Get("/churn_result", churnResult)
}

func showAttritionForm(c *fiber.Ctx) error {
	return c.Render("attrition_prediction", fiber.Map{
		"Features": pipelines.Attrition.Features(),
	})
}

func attritionPredict(c *fiber.Ctx) error {
	sess, err := middleware.Session(c)
	if err != nil {
		return renderError(c, err)
	}

	// Le vecteur suit l'ordre des features de l'artefact, jamais celui du
	// formulaire.
	features := pipelines.Attrition.Features()
	query := make([]float64, 0, len(features))
	params := make(map[string]string, len(features)+1)
	for _, f := range features {
		raw := strings.TrimSpace(c.FormValue(f))
		v, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).Render("attrition_prediction", fiber.Map{
				"Features": features,
				"Error":    fmt.Sprintf("Champ %q manquant ou non numérique.", f),
			})
		}
		query = append(query, float64(v))
		params[f] = raw
	}

	result, err := pipelines.Attrition.Predict(query)
	if err != nil {
		return renderError(c, err)
	}
	params["result"] = result

	sess.Set(middleware.SessionResult, result)
	sess.Set(middleware.SessionAttritionParam, params)
	if err := sess.Save(); err != nil {
		return renderError(c, err)
	}

	recordPrediction(models.PredictionKindAttrition, params, result, middleware.SessionEmailOf(c))
	return c.Redirect("/attrition_result", fiber.StatusSeeOther)
}

func attritionResult(c *fiber.Ctx) error {
	sess, err := middleware.Session(c)
	if err != nil {
		return renderError(c, err)
	}
	params, ok := sess.Get(middleware.SessionAttritionParam).(map[string]string)
	if !ok {
		return c.Redirect("/attrition_prediction", fiber.StatusSeeOther)
	}
	return c.Render("attrition_prediction", fiber.Map{
		"Features": pipelines.Attrition.Features(),
		"Result":   resultMessage(params["result"]),
	})
}

func showChurnForm(c *fiber.Ctx) error {
	return c.Render("churn_prediction", fiber.Map{
		"Departments": pipelines.Churn.Departments(),
		"Salaries":    pipelines.Churn.Salaries(),
	})
}

func churnPredict(c *fiber.Ctx) error {
	sess, err := middleware.Session(c)
	if err != nil {
		return renderError(c, err)
	}

	// Validation uniforme : chaque champ typé est vérifié, comme pour
	// l'attrition.
	var row ml.ChurnRow
	var parseErr error
	parseFloat := func(field string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(c.FormValue(field)), 64)
		if err != nil && parseErr == nil {
			parseErr = fmt.Errorf("Champ %q manquant ou non numérique.", field)
		}
		return v
	}
	parseInt := func(field string) int {
		v, err := strconv.Atoi(strings.TrimSpace(c.FormValue(field)))
		if err != nil && parseErr == nil {
			parseErr = fmt.Errorf("Champ %q manquant ou non numérique.", field)
		}
		return v
	}

	row.SatisfactionLevel = parseFloat("satisfaction_level")
	row.LastEvaluation = parseFloat("last_evaluation")
	row.NumberProject = parseInt("number_project")
	row.AverageMontlyHours = parseInt("average_montly_hours")
	row.TimeSpendCompany = parseInt("time_spend_company")
	row.WorkAccident = parseInt("work_accident")
	row.PromotionLast5Years = parseInt("promotion_last_5years")
	row.Departments = strings.TrimSpace(c.FormValue("departments"))
	row.Salary = strings.TrimSpace(c.FormValue("salary"))

	churnForm := fiber.Map{
		"Departments": pipelines.Churn.Departments(),
		"Salaries":    pipelines.Churn.Salaries(),
	}
	if parseErr != nil {
		churnForm["Error"] = parseErr.Error()
		return c.Status(fiber.StatusBadRequest).Render("churn_prediction", churnForm)
	}

	result, err := pipelines.Churn.Predict(row)
	if err != nil {
		churnForm["Error"] = err.Error()
		return c.Status(fiber.StatusBadRequest).Render("churn_prediction", churnForm)
	}

	params := map[string]string{
		"satisfaction_level":    c.FormValue("satisfaction_level"),
		"last_evaluation":       c.FormValue("last_evaluation"),
		"number_project":        c.FormValue("number_project"),
		"average_montly_hours":  c.FormValue("average_montly_hours"),
		"time_spend_company":    c.FormValue("time_spend_company"),
		"work_accident":         c.FormValue("work_accident"),
		"promotion_last_5years": c.FormValue("promotion_last_5years"),
		"department":            row.Departments,
		"salary":                row.Salary,
		"result":                result,
	}

	sess.Set(middleware.SessionResult, result)
	sess.Set(middleware.SessionChurnParam, params)
	if err := sess.Save(); err != nil {
		return renderError(c, err)
	}

	recordPrediction(models.PredictionKindChurn, params, result, middleware.SessionEmailOf(c))
	return c.Redirect("/churn_result", fiber.StatusSeeOther)
}

func churnResult(c *fiber.Ctx) error {
	sess, err := middleware.Session(c)
	if err != nil {
		return renderError(c, err)
	}
	params, ok := sess.Get(middleware.SessionChurnParam).(map[string]string)
	if !ok {
		return c.Redirect("/churn_prediction", fiber.StatusSeeOther)
	}
	return c.Render("churn_prediction", fiber.Map{
		"Departments": pipelines.Churn.Departments(),
		"Salaries":    pipelines.Churn.Salaries(),
		"Result":      resultMessage(params["result"]),
	})
}

func resultMessage(result string) string {
	if result == ml.LabelYes {
		return "L'employé risque de quitter l'organisation"
	}
	return "L'employé devrait rester dans l'organisation"
}

// recordPrediction trace la prédiction en base ; un échec d'audit ne bloque
// jamais la réponse.
func recordPrediction(kind string, params map[string]string, result, email string) string {
	inputs := make(datatypes.JSONMap, len(params))
	for k, v := range params {
		if k == "result" {
			continue
		}
		inputs[k] = v
	}

	entry := &models.PredictionLog{
		Ref:    uuid.NewString(),
		Kind:   kind,
		Inputs: inputs,
		Result: result,
		Email:  email,
	}
	if err := database.LogPrediction(entry); err != nil {
		log.Printf("⚠️ audit prédiction non enregistré: %v", err)
	}
	return entry.Ref
}
