package middleware

import (
	"encoding/gob"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Clés du bag de session. Les snapshots de prédiction sont écrits une fois
// par le POST predict et relus par la vue résultat.
const (
	SessionLoggedIn       = "logged_in"
	SessionName           = "name"
	SessionEmail          = "email"
	SessionResult         = "result"
	SessionAttritionParam = "attrition_params"
	SessionChurnParam     = "churn_params"
)

var store *session.Store

// InitSessionStore prépare le store de sessions côté serveur (cookie opaque,
// stockage mémoire — pas de partage multi-instance).
func InitSessionStore() {
	gob.Register(map[string]string{})
	store = session.New(session.Config{
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

func Session(c *fiber.Ctx) (*session.Session, error) {
	return store.Get(c)
}

// SessionEmailOf renvoie l'email authentifié de la requête, ou "" sinon.
func SessionEmailOf(c *fiber.Ctx) string {
	sess, err := store.Get(c)
	if err != nil {
		return ""
	}
	email, _ := sess.Get(SessionEmail).(string)
	return email
}

// RequireLogin redirige vers /login toute route qui exige un email en
// session, au lieu de laisser filer une erreur.
func RequireLogin(c *fiber.Ctx) error {
	if SessionEmailOf(c) == "" {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}
