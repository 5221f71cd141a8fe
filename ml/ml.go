// Package ml charge les deux pipelines de classification entraînés hors
// ligne et sert les prédictions en mémoire. Les artefacts sont figés au
// démarrage : aucun apprentissage côté serveur.
package ml

import (
	"fmt"
	"math"
	"path/filepath"
)

const (
	LabelYes = "Yes"
	LabelNo  = "No"
)

// Models regroupe les deux pipelines chargés une fois dans main et passés
// aux handlers ; immuable après le chargement.
type Models struct {
	Attrition *AttritionPipeline
	Churn     *ChurnPipeline
}

// Load lit les deux artefacts depuis dir. Une erreur ici doit interrompre
// le démarrage : on ne sert jamais de requêtes sans modèle.
func Load(dir string) (*Models, error) {
	attrition, err := LoadAttrition(filepath.Join(dir, "attrition_pipe.json"))
	if err != nil {
		return nil, fmt.Errorf("pipeline attrition: %w", err)
	}
	churn, err := LoadChurn(filepath.Join(dir, "churn_pipe.json"))
	if err != nil {
		return nil, fmt.Errorf("pipeline churn: %w", err)
	}
	return &Models{Attrition: attrition, Churn: churn}, nil
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func classify(z float64) string {
	if sigmoid(z) >= 0.5 {
		return LabelYes
	}
	return LabelNo
}
