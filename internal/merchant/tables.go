package merchant

import "regexp"

// Sentinel merchant keys. A key is never empty: when no merchant text
// survives the pipeline the row falls back to one of these.
const (
	// KeyUnresolved means a payment rail was detected but no merchant
	// text survived: a real payment happened, counterparty unknown.
	KeyUnresolved = "UNRESOLVED"
	// KeyNoData means the description carried no signal at all.
	KeyNoData = "ALTRO"
)

// Tables holds every lookup the extraction pipeline consults. The
// defaults are immutable package data; tests inject reduced tables.
type Tables struct {
	Dictionary   map[string]string
	Overrides    map[string]string
	Blacklist    map[string]struct{}
	Marketplaces map[string]struct{}
	BridgeTokens map[string]struct{}
	GlueWords    map[string]struct{}
	Fragments    []string
	Rails        []string
	Prefixes     []string
	Boilerplate  []NamedPattern
}

// NamedPattern is one boilerplate-removal rule, named so each can be
// unit-tested on its own.
type NamedPattern struct {
	Re   *regexp.Regexp
	Name string
}

// defaultRails lists payment-mechanism tokens stripped before any
// merchant recognition. Ordered longest-first so multi-word rails are
// never shadowed by a shorter substring rail.
var defaultRails = []string{
	"PAGAMENTO TRAMITE POS",
	"CARTA DI CREDITO",
	"CARTA DI DEBITO",
	"AMERICAN EXPRESS",
	"PAGAMENTO POS",
	"PAGOBANCOMAT",
	"SAMSUNG PAY",
	"CONTACTLESS",
	"MASTERCARD",
	"GOOGLE PAY",
	"APPLE PAY",
	"AMAZON PAY",
	"PAGAMENTO",
	"BANCOMAT",
	"PRELIEVO",
	"ACQUISTO",
	"MAESTRO",
	"WALLET",
	"CARTA",
	"V PAY",
	"AMEX",
	"NEXI",
	"VISA",
	"POS",
	"ATM",
	"CRD",
}

// defaultPrefixes are leading transactional prefixes stripped from the
// front of the string, repeatedly, after rail removal.
var defaultPrefixes = []string{
	"OP.",
	"OP ",
	"DISPOSIZIONE DI",
	"DISPOSIZIONE",
	"ADDEBITO DIRETTO",
	"ADDEBITO SDD",
	"ADDEBITO",
	"ACCREDITO",
	"BONIFICO A FAVORE DI",
	"BONIFICO DA",
	"BONIFICO",
	"SDD",
	"SEPA",
	"RIF.",
	"RIF ",
	"MAND.",
}

// defaultBoilerplate removes bank-generated reference noise wherever it
// appears.
var defaultBoilerplate = []NamedPattern{
	{Name: "operation-date", Re: regexp.MustCompile(`\b(?:DEL|EFFETTUATO IL|ESEGUITO IL|IL)\s+\d{1,2}[./-]\d{1,2}(?:[./-]\d{2,4})?\b`)},
	{Name: "cro-code", Re: regexp.MustCompile(`\bCRO\s+[A-Z0-9]+\b`)},
	{Name: "trn-code", Re: regexp.MustCompile(`\bTRN\s+[A-Z0-9]+\b`)},
	{Name: "mandate-code", Re: regexp.MustCompile(`\bMANDATO\s+[A-Z0-9]+\b`)},
	{Name: "iban", Re: regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{10,30}\b`)},
	{Name: "card-suffix", Re: regexp.MustCompile(`\bCARTA\s*\*?\d{3,6}\b`)},
}

// noise patterns applied during cleaning, before tokenization.
var (
	embeddedDateRe = regexp.MustCompile(`\b\d{1,2}[./-]\d{1,2}(?:[./-]\d{2,4})?\b|\b\d{4}-\d{2}-\d{2}\b`)
	longDigitsRe   = regexp.MustCompile(`\d{6,}`)
	maskedCardRe   = regexp.MustCompile(`[X*]{2,}\d{2,}|\d{2,}[X*]{2,}\d*`)
	// Punctuation is flattened to spaces, except the characters the
	// sub-merchant separators are built from.
	punctuationRe = regexp.MustCompile(`[^A-Z0-9*\-/:@& ]`)
	regionCodeRe  = regexp.MustCompile(`^[A-Z]{2}$`)
	numericRe     = regexp.MustCompile(`^[0-9]+$`)
)

// defaultOverrides short-circuit the whole pipeline for known
// institution-specific strings that defy the general rules.
var defaultOverrides = map[string]string{
	"IMPOSTA DI BOLLO SU CONTO CORRENTE": "IMPOSTA BOLLO",
	"IMPOSTA DI BOLLO":                   "IMPOSTA BOLLO",
	"CANONE MENSILE CONTO":               "CANONE CONTO",
	"CANONE ANNUO CARTA":                 "CANONE CARTA",
	"COMPETENZE E ONERI TRIMESTRALI":     "SPESE CONTO",
}

// defaultMarketplaces are aggregator prefixes whose right-of-separator
// text names the actual counterparty.
var defaultMarketplaces = map[string]struct{}{
	"PAYPAL":   {},
	"PP":       {},
	"SATISPAY": {},
	"SUMUP":    {},
	"ZETTLE":   {},
	"SQ":       {},
	"STRIPE":   {},
	"KLARNA":   {},
	"AMZN":     {},
	"AMAZON":   {},
}

// defaultBridgeTokens are noise tokens expected between a marketplace
// prefix and its sub-merchant (country and corporate-suffix tokens).
var defaultBridgeTokens = map[string]struct{}{
	"EU": {}, "MKTP": {}, "IT": {}, "COM": {}, "WWW": {},
	"SRL": {}, "SPA": {}, "SNC": {}, "SAS": {}, "SARL": {},
	"LTD": {}, "LLC": {}, "INC": {}, "GMBH": {}, "AG": {},
	"AB": {}, "BV": {}, "PLC": {}, "CORP": {}, "CO": {},
}

// defaultBlacklist holds generic banking verbs that must never win as a
// merchant key.
var defaultBlacklist = map[string]struct{}{
	"COMMISSIONE": {}, "COMMISSIONI": {}, "BONIFICO": {}, "ADDEBITO": {},
	"ACCREDITO": {}, "CANONE": {}, "IMPOSTA": {}, "BOLLO": {},
	"SALDO": {}, "OPERAZIONE": {}, "VERSAMENTO": {}, "GIROCONTO": {},
	"RICARICA": {}, "COMPETENZE": {}, "SPESE": {}, "ONERI": {},
	"INTERESSI": {}, "ESTRATTO": {}, "CONTO": {}, "MOVIMENTO": {},
	"EFFETTUATO": {}, "ESEGUITO": {}, "PRESSO": {}, "TRAMITE": {},
	"FAVORE": {}, "ORDINE": {}, "RIFERIMENTO": {}, "CAUSALE": {},
	"VALUTA": {}, "EURO": {}, "EUR": {}, "IBAN": {}, "SEPA": {},
}

// defaultGlueWords are short tokens that connect multi-word proper names;
// they take a reduced short-token penalty so names like "OSTERIA DA
// MARIO" are not broken apart.
var defaultGlueWords = map[string]struct{}{
	"DA": {}, "DI": {}, "DEL": {}, "DELLA": {}, "DELLE": {}, "DEI": {},
	"E": {}, "LA": {}, "IL": {}, "LE": {}, "LO": {}, "SAN": {}, "S": {},
}

// defaultFragments are merchant-type words that make a token likely to be
// (part of) a merchant name.
var defaultFragments = []string{
	"FARMACIA", "RISTORANTE", "PIZZERIA", "TRATTORIA", "OSTERIA",
	"GELATERIA", "PASTICCERIA", "PANIFICIO", "MACELLERIA", "TABACCHI",
	"EDICOLA", "LIBRERIA", "PALESTRA", "HOTEL", "ALBERGO", "BAR",
	"CAFFE", "SUPERMERCATO", "MERCATO", "MARKET", "STORE", "SHOP",
	"FERRAMENTA", "OTTICA", "PROFUMERIA",
}

// defaultDictionary maps observed brand variants to canonical merchant
// keys. Multi-word variants are matched before shorter ones by the n-gram
// scan.
var defaultDictionary = map[string]string{
	// grocery
	"ESSELUNGA":    "ESSELUNGA",
	"COOP":         "COOP",
	"IPERCOOP":     "COOP",
	"CONAD":        "CONAD",
	"CARREFOUR":    "CARREFOUR",
	"LIDL":         "LIDL",
	"EUROSPIN":     "EUROSPIN",
	"PAM":          "PAM",
	"PENNY":        "PENNY MARKET",
	"PENNY MARKET": "PENNY MARKET",
	"MD":           "MD",

	// subscriptions and digital
	"NETFLIX":        "NETFLIX",
	"NETFLIX COM":    "NETFLIX",
	"SPOTIFY":        "SPOTIFY",
	"SPOTIFY AB":     "SPOTIFY",
	"DAZN":           "DAZN",
	"DISNEY":         "DISNEY",
	"DISNEY PLUS":    "DISNEY",
	"SKY":            "SKY",
	"YOUTUBE":        "YOUTUBE",
	"GOOGLE YOUTUBE": "YOUTUBE",
	"APPLE":          "APPLE",
	"APPLE COM":      "APPLE",
	"GOOGLE":         "GOOGLE",

	// shopping
	"AMAZON":      "AMAZON",
	"AMZN":        "AMAZON",
	"ZALANDO":     "ZALANDO",
	"IKEA":        "IKEA",
	"DECATHLON":   "DECATHLON",
	"ZARA":        "ZARA",
	"UNIEURO":     "UNIEURO",
	"MEDIAWORLD":  "MEDIAWORLD",
	"MEDIA WORLD": "MEDIAWORLD",

	// food delivery and dining
	"DELIVEROO":   "DELIVEROO",
	"GLOVO":       "GLOVO",
	"JUST EAT":    "JUST EAT",
	"JUSTEAT":     "JUST EAT",
	"UBER EATS":   "UBER EATS",
	"UBER":        "UBER",
	"MCDONALD":    "MCDONALDS",
	"MCDONALDS":   "MCDONALDS",
	"BURGER KING": "BURGER KING",
	"AUTOGRILL":   "AUTOGRILL",

	// transport and fuel
	"TRENITALIA": "TRENITALIA",
	"ITALO":      "ITALO",
	"TELEPASS":   "TELEPASS",
	"AUTOSTRADE": "AUTOSTRADE",
	"ENI":        "ENI",
	"AGIP":       "ENI",
	"Q8":         "Q8",
	"ESSO":       "ESSO",
	"SHELL":      "SHELL",
	"TAMOIL":     "TAMOIL",
	"RYANAIR":    "RYANAIR",
	"EASYJET":    "EASYJET",

	// utilities and telecom
	"ENEL":         "ENEL",
	"ENEL ENERGIA": "ENEL",
	"A2A":          "A2A",
	"HERA":         "HERA",
	"IREN":         "IREN",
	"FASTWEB":      "FASTWEB",
	"TIM":          "TIM",
	"VODAFONE":     "VODAFONE",
	"WINDTRE":      "WINDTRE",
	"WIND TRE":     "WINDTRE",
	"ILIAD":        "ILIAD",

	// travel
	"BOOKING":     "BOOKING",
	"BOOKING COM": "BOOKING",
	"AIRBNB":      "AIRBNB",

	// institutions
	"POSTE ITALIANE":  "POSTE ITALIANE",
	"POSTE":           "POSTE ITALIANE",
	"AGENZIA ENTRATE": "AGENZIA ENTRATE",
}

// DefaultTables returns the built-in rule tables. The result shares the
// package-level maps; callers must treat it as read-only.
func DefaultTables() Tables {
	return Tables{
		Dictionary:   defaultDictionary,
		Overrides:    defaultOverrides,
		Blacklist:    defaultBlacklist,
		Marketplaces: defaultMarketplaces,
		BridgeTokens: defaultBridgeTokens,
		GlueWords:    defaultGlueWords,
		Fragments:    defaultFragments,
		Rails:        defaultRails,
		Prefixes:     defaultPrefixes,
		Boilerplate:  defaultBoilerplate,
	}
}
