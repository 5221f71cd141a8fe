package database

import (
	"errors"

	"gorm.io/gorm"

	"hr-insight/models"
)

// ErrEmailTaken est renvoyée quand l'email de signup existe déjà.
var ErrEmailTaken = errors.New("email déjà enregistré")

// CreateUser refuse les doublons avant l'insert ; l'index unique sur email
// reste le garde-fou en cas d'inscriptions concurrentes.
func CreateUser(name, email, passwordHash string) (*models.User, error) {
	var existing models.User
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertEmployee met à jour prediction_result si la paire
// (employee_id, email) existe déjà, sinon crée la ligne.
func UpsertEmployee(employeeID, employeeName, predictionResult, ownerEmail string) (*models.Employee, error) {
	var emp models.Employee
	err := DB.Where("employee_id = ? AND email = ?", employeeID, ownerEmail).First(&emp).Error
	switch {
	case err == nil:
		emp.PredictionResult = predictionResult
		if err := DB.Model(&emp).Update("prediction_result", predictionResult).Error; err != nil {
			return nil, err
		}
		return &emp, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		emp = models.Employee{
			EmployeeID:       employeeID,
			EmployeeName:     employeeName,
			PredictionResult: predictionResult,
			Email:            ownerEmail,
		}
		if err := DB.Create(&emp).Error; err != nil {
			return nil, err
		}
		return &emp, nil
	default:
		return nil, err
	}
}

// ListEmployees renvoie les lignes du propriétaire, dans l'ordre d'insertion.
func ListEmployees(ownerEmail string) ([]models.Employee, error) {
	var employees []models.Employee
	if err := DB.Where("email = ?", ownerEmail).Order("id").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// DeleteEmployee supprime uniquement si la ligne appartient à ownerEmail :
// une seule requête filtrée par les deux clés, jamais de fetch-puis-compare.
// Renvoie false quand rien n'a été supprimé (inexistant ou autre compte).
// Suppression dure : une ligne soft-deleted bloquerait l'index unique
// (employee_id, email) lors d'une nouvelle sauvegarde du même employé.
func DeleteEmployee(id uint, ownerEmail string) (bool, error) {
	res := DB.Unscoped().Where("id = ? AND email = ?", id, ownerEmail).Delete(&models.Employee{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// LogPrediction trace une prédiction servie ; best-effort.
func LogPrediction(entry *models.PredictionLog) error {
	return DB.Create(entry).Error
}

// ListPredictions renvoie l'historique des prédictions d'un compte.
func ListPredictions(ownerEmail string) ([]models.PredictionLog, error) {
	var logs []models.PredictionLog
	if err := DB.Where("email = ?", ownerEmail).Order("id").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
