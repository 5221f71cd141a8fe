package routes

import (
	"errors"
	"strings"

	"hr-insight/database"
	"hr-insight/middleware"
	"hr-insight/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	app.Get("/", home)
	app.Get("/overview", overview)
	app.Get("/signup", showSignup)
	app.Post("/signup", signup)
	app.Get("/login", showLogin)
	app.Post("/login", login)
	app.Post("/logout", logout)
}

func home(c *fiber.Ctx) error {
	sess, err := middleware.Session(c)
	if err != nil {
		return renderError(c, err)
	}
	if loggedIn, _ := sess.Get(middleware.SessionLoggedIn).(bool); !loggedIn {
		return c.Redirect("/signup", fiber.StatusSeeOther)
	}
	name, _ := sess.Get(middleware.SessionName).(string)
	return c.Render("index", fiber.Map{"Name": name})
}

func overview(c *fiber.Ctx) error {
	return c.Render("overview", fiber.Map{})
}

func showSignup(c *fiber.Ctx) error {
	return c.Render("signup", fiber.Map{})
}

func signup(c *fiber.Ctx) error {
	name := strings.TrimSpace(c.FormValue("name"))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	if name == "" || email == "" || password == "" {
		return c.Render("signup", fiber.Map{"Error": "Tous les champs sont requis."})
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return c.Render("signup", fiber.Map{"Error": "Erreur lors de la création du compte. Réessayez."})
	}

	user, err := database.CreateUser(name, email, hash)
	if errors.Is(err, database.ErrEmailTaken) {
		return c.Render("signup", fiber.Map{"Error": "Cet email existe déjà. Essayez de vous connecter."})
	}
	if err != nil {
		return c.Render("signup", fiber.Map{"Error": "Erreur lors de la création du compte. Réessayez."})
	}

	if err := openSession(c, user.Name, user.Email); err != nil {
		return renderError(c, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func showLogin(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{})
}

func login(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	user, err := database.FindUserByEmail(email)
	if err != nil || !utils.CheckPassword(user.PasswordHash, password) {
		return c.Render("login", fiber.Map{"Error": "Identifiants invalides. Réessayez."})
	}

	if err := openSession(c, user.Name, user.Email); err != nil {
		return renderError(c, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func logout(c *fiber.Ctx) error {
	sess, err := middleware.Session(c)
	if err != nil {
		return renderError(c, err)
	}
	sess.Delete(middleware.SessionLoggedIn)
	sess.Delete(middleware.SessionName)
	sess.Delete(middleware.SessionEmail)
	if err := sess.Save(); err != nil {
		return renderError(c, err)
	}
	return c.Redirect("/signup", fiber.StatusSeeOther)
}

func openSession(c *fiber.Ctx, name, email string) error {
	sess, err := middleware.Session(c)
	if err != nil {
		return err
	}
	sess.Set(middleware.SessionLoggedIn, true)
	sess.Set(middleware.SessionName, name)
	sess.Set(middleware.SessionEmail, email)
	return sess.Save()
}

// renderError : filet de sécurité pour les fautes inattendues (store, session).
func renderError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{"Error": err.Error()})
}
