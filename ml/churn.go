package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// ChurnRow est la ligne structurée attendue par le pipeline churn. Les noms
// de colonnes (casse comprise, "Work_accident" et la faute historique
// "average_montly_hours") font partie du contrat de l'artefact.
type ChurnRow struct {
	SatisfactionLevel   float64 `json:"satisfaction_level"`
	LastEvaluation      float64 `json:"last_evaluation"`
	NumberProject       int     `json:"number_project"`
	AverageMontlyHours  int     `json:"average_montly_hours"`
	TimeSpendCompany    int     `json:"time_spend_company"`
	WorkAccident        int     `json:"Work_accident"`
	PromotionLast5Years int     `json:"promotion_last_5years"`
	Departments         string  `json:"departments"`
	Salary              string  `json:"salary"`
}

// ChurnPipeline : régression logistique sur 7 colonnes numériques plus deux
// colonnes catégorielles encodées par table de poids.
type ChurnPipeline struct {
	numericCoef struct {
		SatisfactionLevel   float64
		LastEvaluation      float64
		NumberProject       float64
		AverageMontlyHours  float64
		TimeSpendCompany    float64
		WorkAccident        float64
		PromotionLast5Years float64
	}
	departments map[string]float64
	salaries    map[string]float64
	intercept   float64
}

type churnArtifact struct {
	Model       string             `json:"model"`
	NumericCoef map[string]float64 `json:"numeric_coef"`
	Departments map[string]float64 `json:"departments"`
	Salaries    map[string]float64 `json:"salaries"`
	Intercept   float64            `json:"intercept"`
}

var churnNumericColumns = []string{
	"satisfaction_level",
	"last_evaluation",
	"number_project",
	"average_montly_hours",
	"time_spend_company",
	"Work_accident",
	"promotion_last_5years",
}

func LoadChurn(path string) (*ChurnPipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var art churnArtifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("artefact illisible: %w", err)
	}

	for _, col := range churnNumericColumns {
		if _, ok := art.NumericCoef[col]; !ok {
			return nil, fmt.Errorf("coefficient manquant pour la colonne %q", col)
		}
	}
	if len(art.Departments) == 0 || len(art.Salaries) == 0 {
		return nil, fmt.Errorf("tables catégorielles vides")
	}

	p := &ChurnPipeline{
		departments: art.Departments,
		salaries:    art.Salaries,
		intercept:   art.Intercept,
	}
	p.numericCoef.SatisfactionLevel = art.NumericCoef["satisfaction_level"]
	p.numericCoef.LastEvaluation = art.NumericCoef["last_evaluation"]
	p.numericCoef.NumberProject = art.NumericCoef["number_project"]
	p.numericCoef.AverageMontlyHours = art.NumericCoef["average_montly_hours"]
	p.numericCoef.TimeSpendCompany = art.NumericCoef["time_spend_company"]
	p.numericCoef.WorkAccident = art.NumericCoef["Work_accident"]
	p.numericCoef.PromotionLast5Years = art.NumericCoef["promotion_last_5years"]
	return p, nil
}

// Departments liste les catégories connues du modèle (pour les formulaires).
func (p *ChurnPipeline) Departments() []string {
	return sortedKeys(p.departments)
}

// Salaries liste les niveaux de salaire connus du modèle.
func (p *ChurnPipeline) Salaries() []string {
	return sortedKeys(p.salaries)
}

// Predict renvoie "Yes" (turnover probable) ou "No". Une catégorie inconnue
// de l'artefact est refusée, jamais encodée silencieusement à zéro.
func (p *ChurnPipeline) Predict(row ChurnRow) (string, error) {
	if math.IsNaN(row.SatisfactionLevel) || math.IsInf(row.SatisfactionLevel, 0) ||
		math.IsNaN(row.LastEvaluation) || math.IsInf(row.LastEvaluation, 0) {
		return "", fmt.Errorf("valeur non finie dans la ligne")
	}

	deptWeight, ok := p.departments[row.Departments]
	if !ok {
		return "", fmt.Errorf("département inconnu %q", row.Departments)
	}
	salaryWeight, ok := p.salaries[row.Salary]
	if !ok {
		return "", fmt.Errorf("niveau de salaire inconnu %q", row.Salary)
	}

	z := p.intercept +
		p.numericCoef.SatisfactionLevel*row.SatisfactionLevel +
		p.numericCoef.LastEvaluation*row.LastEvaluation +
		p.numericCoef.NumberProject*float64(row.NumberProject) +
		p.numericCoef.AverageMontlyHours*float64(row.AverageMontlyHours) +
		p.numericCoef.TimeSpendCompany*float64(row.TimeSpendCompany) +
		p.numericCoef.WorkAccident*float64(row.WorkAccident) +
		p.numericCoef.PromotionLast5Years*float64(row.PromotionLast5Years) +
		deptWeight + salaryWeight

	return classify(z), nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
