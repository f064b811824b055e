// Package i18n holds the translated message catalog used to localize
// API error messages. Message ids follow the "<resource>.<event>" naming
// used across the admin backend.
package i18n

import (
	"fmt"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
)

// DefaultLocale is used when a requested locale is not registered.
const DefaultLocale = "en"

// SupportedLocales lists the locales the catalog ships translations for.
var SupportedLocales = []string{"en", "fr"}

// message is a single catalog entry with its translations.
type message struct {
	id string
	en string
	fr string
}

var messages = []message{
	{
		id: "common.unexpected_error",
		en: "An unexpected error occurred. Please retry later.",
		fr: "Une erreur inattendue est survenue. Veuillez réessayer plus tard.",
	},
	{
		id: "common.network_error",
		en: "The server could not be reached. Check your connection and retry.",
		fr: "Le serveur est injoignable. Vérifiez votre connexion et réessayez.",
	},
	{
		id: "common.validation_error",
		en: "The submitted data is invalid.",
		fr: "Les données soumises sont invalides.",
	},
	{
		id: "common.not_found",
		en: "The requested resource cannot be found.",
		fr: "La ressource demandée est introuvable.",
	},
	{
		id: "auth.unauthorized",
		en: "Your session is invalid or has expired. Please sign in again.",
		fr: "Votre session est invalide ou a expiré. Veuillez vous reconnecter.",
	},
	{
		id: "auth.token_expired",
		en: "Your access token has expired. Please sign in again.",
		fr: "Votre jeton d'accès a expiré. Veuillez vous reconnecter.",
	},
	{
		id: "auth.permission_denied",
		en: "You do not have permission to perform this action.",
		fr: "Vous n'avez pas la permission d'effectuer cette action.",
	},
	{
		id: "attachment.unreadable",
		en: "The selected file could not be read.",
		fr: "Le fichier sélectionné n'a pas pu être lu.",
	},
	{
		id: "attachment.unsupported_format",
		en: "The selected file format is not supported.",
		fr: "Le format du fichier sélectionné n'est pas pris en charge.",
	},
}

// resourceMessage declares the per-resource message family. The five
// CRUD message ids are derived from the key, so "organizations" yields
// "organizations.fetch_error", "organizations.not_found" and so on.
type resourceMessage struct {
	key string

	enPlural   string
	enSingular string
	frPlural   string
	frSingular string
}

var resources = []resourceMessage{
	{key: "organizations", enPlural: "organizations", enSingular: "organization", frPlural: "organisations", frSingular: "organisation"},
	{key: "courses", enPlural: "courses", enSingular: "course", frPlural: "cours", frSingular: "cours"},
	{key: "course_runs", enPlural: "course runs", enSingular: "course run", frPlural: "sessions de cours", frSingular: "session de cours"},
	{key: "products", enPlural: "products", enSingular: "product", frPlural: "produits", frSingular: "produit"},
	{key: "offerings", enPlural: "offerings", enSingular: "offering", frPlural: "offres", frSingular: "offre"},
	{key: "orders", enPlural: "orders", enSingular: "order", frPlural: "commandes", frSingular: "commande"},
	{key: "batch_orders", enPlural: "batch orders", enSingular: "batch order", frPlural: "commandes groupées", frSingular: "commande groupée"},
	{key: "vouchers", enPlural: "vouchers", enSingular: "voucher", frPlural: "bons de réduction", frSingular: "bon de réduction"},
	{key: "discounts", enPlural: "discounts", enSingular: "discount", frPlural: "remises", frSingular: "remise"},
	{key: "certificate_definitions", enPlural: "certificate definitions", enSingular: "certificate definition", frPlural: "modèles de certificat", frSingular: "modèle de certificat"},
	{key: "contract_definitions", enPlural: "contract definitions", enSingular: "contract definition", frPlural: "modèles de contrat", frSingular: "modèle de contrat"},
	{key: "quote_definitions", enPlural: "quote definitions", enSingular: "quote definition", frPlural: "modèles de devis", frSingular: "modèle de devis"},
	{key: "users", enPlural: "users", enSingular: "user", frPlural: "utilisateurs", frSingular: "utilisateur"},
}

// Catalog owns the universal-translator instance with every message
// registered for each supported locale.
type Catalog struct {
	uni *ut.UniversalTranslator
}

// NewCatalog builds the catalog and registers all translations.
func NewCatalog() (*Catalog, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale, fr.New())

	c := &Catalog{uni: uni}
	for _, locale := range SupportedLocales {
		if err := c.register(locale); err != nil {
			return nil, fmt.Errorf("register %s translations: %w", locale, err)
		}
	}
	return c, nil
}

func (c *Catalog) register(locale string) error {
	trans, found := c.uni.GetTranslator(locale)
	if !found {
		return fmt.Errorf("locale %q is not registered", locale)
	}

	for _, m := range messages {
		text := m.en
		if locale == "fr" {
			text = m.fr
		}
		if err := trans.Add(m.id, text, false); err != nil {
			return fmt.Errorf("add %s: %w", m.id, err)
		}
	}

	for _, r := range resources {
		for id, text := range resourceTexts(r, locale) {
			if err := trans.Add(id, text, false); err != nil {
				return fmt.Errorf("add %s: %w", id, err)
			}
		}
	}
	return nil
}

// resourceTexts spells out the CRUD message family for one resource.
func resourceTexts(r resourceMessage, locale string) map[string]string {
	if locale == "fr" {
		return map[string]string{
			r.key + ".fetch_error":  fmt.Sprintf("Une erreur est survenue lors de la récupération des %s. Veuillez réessayer plus tard.", r.frPlural),
			r.key + ".not_found":    fmt.Sprintf("Impossible de trouver la %s demandée.", r.frSingular),
			r.key + ".create_error": fmt.Sprintf("Une erreur est survenue lors de la création de la %s.", r.frSingular),
			r.key + ".update_error": fmt.Sprintf("Une erreur est survenue lors de la mise à jour de la %s.", r.frSingular),
			r.key + ".delete_error": fmt.Sprintf("Une erreur est survenue lors de la suppression de la %s.", r.frSingular),
		}
	}
	return map[string]string{
		r.key + ".fetch_error":  fmt.Sprintf("An error occurred while fetching %s. Please retry later.", r.enPlural),
		r.key + ".not_found":    fmt.Sprintf("Cannot find the requested %s.", r.enSingular),
		r.key + ".create_error": fmt.Sprintf("An error occurred while creating the %s.", r.enSingular),
		r.key + ".update_error": fmt.Sprintf("An error occurred while updating the %s.", r.enSingular),
		r.key + ".delete_error": fmt.Sprintf("An error occurred while deleting the %s.", r.enSingular),
	}
}

// Translator returns the message handle for a locale. Unknown locales
// fall back to the default locale rather than failing, so callers can
// pass user input directly.
func (c *Catalog) Translator(locale string) Translator {
	trans, found := c.uni.GetTranslator(locale)
	if !found {
		trans, _ = c.uni.GetTranslator(DefaultLocale)
	}
	return Translator{trans: trans}
}

// Translator resolves message ids for a single locale.
type Translator struct {
	trans ut.Translator
}

// T returns the translated message for id. Unknown ids return the id
// itself so a missing translation never hides the underlying error.
func (t Translator) T(id string, params ...string) string {
	if t.trans == nil {
		return id
	}
	msg, err := t.trans.T(id, params...)
	if err != nil {
		return id
	}
	return msg
}

// Locale reports the locale this translator resolves against.
func (t Translator) Locale() string {
	if t.trans == nil {
		return DefaultLocale
	}
	return t.trans.Locale()
}

// Universal exposes the underlying universal-translator handle so
// other libraries (the payload validator in particular) can register
// and resolve their own messages on it.
func (t Translator) Universal() ut.Translator {
	return t.trans
}
