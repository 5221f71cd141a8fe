package models

import "gorm.io/gorm"

const (
	ResultYes     = "Yes"
	ResultNo      = "No"
	ResultUnknown = "Unknown"
)

// Employee est une ligne sauvegardée par un utilisateur : la paire
// (employee_id, email) sert de clé métier pour l'upsert.
type Employee struct {
	gorm.Model
	EmployeeID       string `gorm:"uniqueIndex:idx_employee_owner" json:"employee_id"`
	EmployeeName     string `json:"employee_name"`
	PredictionResult string `json:"prediction_result"`
	Email            string `gorm:"uniqueIndex:idx_employee_owner" json:"email"`
}
