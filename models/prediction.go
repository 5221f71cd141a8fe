package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PredictionKindAttrition = "attrition"
	PredictionKindChurn     = "churn"
)

// PredictionLog garde la trace de chaque prédiction servie (audit).
// Email reste vide quand l'appelant n'est pas connecté.
type PredictionLog struct {
	gorm.Model
	Ref    string            `gorm:"uniqueIndex" json:"ref"`
	Kind   string            `json:"kind"`
	Inputs datatypes.JSONMap `json:"inputs"`
	Result string            `json:"result"`
	Email  string            `gorm:"index" json:"email,omitempty"`
}
