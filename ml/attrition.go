package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// AttritionPipeline : régression logistique sur un vecteur numérique
// ordonné. L'ordre des features vient de l'artefact lui-même — c'est le
// contrat avec l'entraînement, ne jamais réordonner côté serveur.
type AttritionPipeline struct {
	features  []string
	mean      []float64
	scale     []float64
	coef      []float64
	intercept float64
}

type attritionArtifact struct {
	Model     string    `json:"model"`
	Features  []string  `json:"features"`
	Mean      []float64 `json:"mean"`
	Scale     []float64 `json:"scale"`
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

func LoadAttrition(path string) (*AttritionPipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var art attritionArtifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, fmt.Errorf("artefact illisible: %w", err)
	}

	n := len(art.Features)
	if n == 0 {
		return nil, fmt.Errorf("artefact sans features")
	}
	if len(art.Mean) != n || len(art.Scale) != n || len(art.Coef) != n {
		return nil, fmt.Errorf("artefact incohérent: %d features, %d mean, %d scale, %d coef",
			n, len(art.Mean), len(art.Scale), len(art.Coef))
	}
	for i, s := range art.Scale {
		if s == 0 {
			return nil, fmt.Errorf("scale nul pour la feature %q", art.Features[i])
		}
	}

	return &AttritionPipeline{
		features:  art.Features,
		mean:      art.Mean,
		scale:     art.Scale,
		coef:      art.Coef,
		intercept: art.Intercept,
	}, nil
}

// Features expose l'ordre contractuel du vecteur d'entrée.
func (p *AttritionPipeline) Features() []string {
	return p.features
}

// Predict renvoie "Yes" (l'employé risque de partir) ou "No". Un vecteur
// de mauvaise taille ou contenant des valeurs non finies est refusé avant
// d'atteindre le modèle.
func (p *AttritionPipeline) Predict(query []float64) (string, error) {
	if len(query) != len(p.features) {
		return "", fmt.Errorf("vecteur de taille %d, %d attendu", len(query), len(p.features))
	}

	z := p.intercept
	for i, v := range query {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "", fmt.Errorf("valeur non finie pour la feature %q", p.features[i])
		}
		z += p.coef[i] * (v - p.mean[i]) / p.scale[i]
	}
	return classify(z), nil
}
