package enrich

// Well-known category identifiers referenced by the static rules and by
// the payload builder's direction fallbacks. The caller-supplied
// directory must contain at least the two fallback categories.
const (
	CategoryGroceries     = "groceries"
	CategorySubscriptions = "subscriptions"
	CategorySalary        = "salary"
	CategoryTransport     = "transport"
	CategoryDining        = "dining"
	CategoryUtilities     = "utilities"
	CategoryHealth        = "health"
	CategoryShopping      = "shopping"
	CategoryTravel        = "travel"
	CategoryFees          = "fees"
	CategoryCash          = "cash"
	CategoryOtherExpense  = "other-expense"
	CategoryOtherIncome   = "other-income"
)

// PatternRule maps a keyword set to a category. Rules are scanned in
// order; the first keyword hit wins.
type PatternRule struct {
	Name       string
	CategoryID string
	Keywords   []string
}

// DefaultRules is the static rule table. Keywords match as substrings of
// the uppercase merchant key.
var DefaultRules = []PatternRule{
	{
		Name:       "salary",
		CategoryID: CategorySalary,
		Keywords:   []string{"STIPENDIO", "EMOLUMENTI", "CEDOLINO", "SALARY", "PAYROLL"},
	},
	{
		Name:       "subscriptions",
		CategoryID: CategorySubscriptions,
		Keywords:   []string{"NETFLIX", "SPOTIFY", "DAZN", "DISNEY", "SKY", "YOUTUBE", "PRIME"},
	},
	{
		Name:       "groceries",
		CategoryID: CategoryGroceries,
		Keywords: []string{
			"ESSELUNGA", "COOP", "CONAD", "CARREFOUR", "LIDL", "EUROSPIN",
			"PAM", "PENNY", "SUPERMERCATO", "ALIMENTARI",
		},
	},
	{
		Name:       "transport",
		CategoryID: CategoryTransport,
		Keywords: []string{
			"TRENITALIA", "ITALO", "TELEPASS", "AUTOSTRADE", "ENI", "Q8",
			"ESSO", "SHELL", "TAMOIL", "UBER", "TAXI", "PARCHEGGIO",
		},
	},
	{
		Name:       "dining",
		CategoryID: CategoryDining,
		Keywords: []string{
			"RISTORANTE", "PIZZERIA", "TRATTORIA", "OSTERIA", "BAR", "CAFFE",
			"MCDONALDS", "BURGER KING", "DELIVEROO", "GLOVO", "JUST EAT", "UBER EATS",
		},
	},
	{
		Name:       "utilities",
		CategoryID: CategoryUtilities,
		Keywords: []string{
			"ENEL", "A2A", "HERA", "IREN", "FASTWEB", "TIM", "VODAFONE",
			"WINDTRE", "ILIAD",
		},
	},
	{
		Name:       "health",
		CategoryID: CategoryHealth,
		Keywords:   []string{"FARMACIA", "OSPEDALE", "AMBULATORIO", "DENTISTA", "TICKET SANITARIO"},
	},
	{
		Name:       "travel",
		CategoryID: CategoryTravel,
		Keywords:   []string{"RYANAIR", "EASYJET", "BOOKING", "AIRBNB", "HOTEL", "ALBERGO"},
	},
	{
		Name:       "shopping",
		CategoryID: CategoryShopping,
		Keywords:   []string{"AMAZON", "ZALANDO", "IKEA", "DECATHLON", "ZARA", "UNIEURO", "MEDIAWORLD"},
	},
	{
		Name:       "fees",
		CategoryID: CategoryFees,
		Keywords:   []string{"IMPOSTA BOLLO", "CANONE CONTO", "CANONE CARTA", "SPESE CONTO", "COMMISSIONE"},
	},
}
