package domain

import "strings"

// Language selects the wording of validation messages and labels
type Language string

const (
	LanguageFrench  Language = "fr"
	LanguageEnglish Language = "en"
)

// ParseLanguage maps a config value to a language, defaulting to French
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "english":
		return LanguageEnglish
	default:
		return LanguageFrench
	}
}

var requiredMessages = map[Language]map[Field]string{
	LanguageFrench: {
		FieldInvoiceNumber: "Le numéro de facture est requis",
		FieldInvoiceDate:   "La date est requise",
		FieldSenderName:    "Le nom est requis",
		FieldSenderAddress: "L'adresse est requise",
		FieldSenderPhone:   "Le téléphone est requis",
		FieldReceiverName:  "Le nom est requis",
		FieldTPSCode:       "Le numéro de TPS est requis",
		FieldTVQCode:       "Le numéro de TVQ est requis",
	},
	LanguageEnglish: {
		FieldInvoiceNumber: "Invoice number is required",
		FieldInvoiceDate:   "Date is required",
		FieldSenderName:    "Name is required",
		FieldSenderAddress: "Address is required",
		FieldSenderPhone:   "Phone is required",
		FieldReceiverName:  "Name is required",
		FieldTPSCode:       "TPS number is required",
		FieldTVQCode:       "TVQ number is required",
	},
}

var labels = map[Language]map[Field]string{
	LanguageFrench: {
		FieldInvoiceNumber:   "№ de facture",
		FieldInvoiceDate:     "Date",
		FieldSenderName:      "Nom",
		FieldSenderAddress:   "Adresse",
		FieldSenderPhone:     "Téléphone",
		FieldSenderEmail:     "Courriel",
		FieldReceiverName:    "Nom",
		FieldReceiverAddress: "Adresse",
		FieldReceiverPhone:   "Téléphone",
		FieldReceiverEmail:   "Courriel",
		FieldTPSCode:         "№ TPS",
		FieldTVQCode:         "№ TVQ",
	},
	LanguageEnglish: {
		FieldInvoiceNumber:   "Invoice #",
		FieldInvoiceDate:     "Date",
		FieldSenderName:      "Name",
		FieldSenderAddress:   "Address",
		FieldSenderPhone:     "Phone",
		FieldSenderEmail:     "Email",
		FieldReceiverName:    "Name",
		FieldReceiverAddress: "Address",
		FieldReceiverPhone:   "Phone",
		FieldReceiverEmail:   "Email",
		FieldTPSCode:         "TPS #",
		FieldTVQCode:         "TVQ #",
	},
}

func (l Language) catalog() Language {
	if l == LanguageEnglish {
		return LanguageEnglish
	}
	return LanguageFrench
}

func (l Language) requiredMessage(f Field) string {
	if msg, ok := requiredMessages[l.catalog()][f]; ok {
		return msg
	}
	return l.Label(f)
}

func (l Language) invalidDateMessage() string {
	if l.catalog() == LanguageEnglish {
		return "Date must be YYYY-MM-DD"
	}
	return "La date doit être au format AAAA-MM-JJ"
}

// Label returns the display label of a field; required fields carry a star
func (l Language) Label(f Field) string {
	label := l.Caption(f)
	if f.Required() {
		label += " *"
	}
	return label
}

// Caption returns the bare field name used on the printed document
func (l Language) Caption(f Field) string {
	return labels[l.catalog()][f]
}

// PrintBlockedMessage is the alert shown when printing is refused
func (l Language) PrintBlockedMessage() string {
	if l.catalog() == LanguageEnglish {
		return "Please fill in all required fields before printing"
	}
	return "Veuillez remplir tous les champs requis avant d'imprimer"
}

// Text holds the fixed captions of the invoice layout
type Text struct {
	Title       string
	BilledTo    string
	From        string
	Description string
	Quantity    string
	UnitPrice   string
	Price       string
	Subtotal    string
	TPS         string
	TVQ         string
	Total       string
	Add         string
	Print       string
	Remove      string
	Missing     string
	Printed     string
	Help        string
}

// Text returns the layout captions in the language
func (l Language) Text() Text {
	if l.catalog() == LanguageEnglish {
		return Text{
			Title:       "INVOICE",
			BilledTo:    "Billed to:",
			From:        "From:",
			Description: "Description",
			Quantity:    "Quantity",
			UnitPrice:   "Unit price",
			Price:       "Price",
			Subtotal:    "Subtotal:",
			TPS:         "TPS (5%):",
			TVQ:         "TVQ (9.975%):",
			Total:       "Total:",
			Add:         "Add",
			Print:       "Print",
			Remove:      "Remove",
			Missing:     "Missing:",
			Printed:     "Printed:",
			Help:        "tab/shift+tab: move  enter: add/remove/print  ctrl+p: print  ctrl+c: quit",
		}
	}
	return Text{
		Title:       "FACTURE",
		BilledTo:    "Facturé à:",
		From:        "De:",
		Description: "Description",
		Quantity:    "Quantité",
		UnitPrice:   "Prix unitaire",
		Price:       "Prix",
		Subtotal:    "Sous-total:",
		TPS:         "TPS (5%):",
		TVQ:         "TVQ (9.975%):",
		Total:       "Total:",
		Add:         "Ajouter",
		Print:       "Imprimer",
		Remove:      "Retirer",
		Missing:     "Champs manquants:",
		Printed:     "Imprimée:",
		Help:        "tab/maj+tab: naviguer  entrée: ajouter/retirer/imprimer  ctrl+p: imprimer  ctrl+c: quitter",
	}
}
