package routes

import (
	"strconv"
	"strings"

	"hr-insight/database"
	"hr-insight/middleware"
	"hr-insight/models"

	"github.com/gofiber/fiber/v2"
)

func SetupRecordRoutes(app *fiber.App) {
	app.Get("/add_record", showAddRecord)
	app.Post("/save_record", middleware.RequireLogin, saveRecord)
	app.Get("/employee_list", middleware.RequireLogin, employeeList)
	app.Post("/delete_employee", middleware.RequireLogin, deleteEmployee)
}

func showAddRecord(c *fiber.Ctx) error {
	return c.Render("add_record", fiber.Map{})
}

func saveRecord(c *fiber.Ctx) error {
	sess, err := middleware.Session(c)
	if err != nil {
		return renderError(c, err)
	}

	employeeID := strings.TrimSpace(c.FormValue("employee_id"))
	employeeName := strings.TrimSpace(c.FormValue("employee_name"))
	if employeeID == "" || employeeName == "" {
		return c.Status(fiber.StatusBadRequest).Render("add_record", fiber.Map{
			"Error": "Identifiant et nom de l'employé requis.",
		})
	}

	// Dernier résultat calculé dans la session, "Unknown" si rien n'a encore
	// été prédit.
	result, _ := sess.Get(middleware.SessionResult).(string)
	if result == "" {
		result = models.ResultUnknown
	}
	email, _ := sess.Get(middleware.SessionEmail).(string)

	if _, err := database.UpsertEmployee(employeeID, employeeName, result, email); err != nil {
		return renderError(c, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func employeeList(c *fiber.Ctx) error {
	email := middleware.SessionEmailOf(c)

	employees, err := database.ListEmployees(email)
	if err != nil {
		return renderError(c, err)
	}

	data := fiber.Map{"Employees": employees}
	switch c.Query("deleted") {
	case "1":
		data["Message"] = "Employé supprimé."
	case "0":
		data["Message"] = "Employé introuvable ou action non autorisée."
	}
	return c.Render("employee_list", data)
}

func deleteEmployee(c *fiber.Ctx) error {
	email := middleware.SessionEmailOf(c)

	id, err := strconv.ParseUint(strings.TrimSpace(c.FormValue("employee_id")), 10, 64)
	if err != nil {
		return c.Redirect("/employee_list?deleted=0", fiber.StatusSeeOther)
	}

	// Une ligne d'un autre compte se comporte exactement comme une ligne
	// inexistante.
	deleted, err := database.DeleteEmployee(uint(id), email)
	if err != nil {
		return renderError(c, err)
	}
	if !deleted {
		return c.Redirect("/employee_list?deleted=0", fiber.StatusSeeOther)
	}
	return c.Redirect("/employee_list?deleted=1", fiber.StatusSeeOther)
}
