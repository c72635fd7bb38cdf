package model

// CategoryType indicates whether a category applies to income or expenses.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
)

// SpendingNature qualifies how discretionary spending in a category is.
type SpendingNature string

const (
	// NatureEssential marks unavoidable spending (groceries, utilities).
	NatureEssential SpendingNature = "essential"
	// NatureSuperfluous marks discretionary spending (subscriptions, dining).
	NatureSuperfluous SpendingNature = "superfluous"
	// NatureNeutral marks categories where the distinction does not apply.
	NatureNeutral SpendingNature = "neutral"
)

// Category is one entry of the caller-supplied category directory.
type Category struct {
	ID     string
	Label  string
	Type   CategoryType
	Nature SpendingNature
}

// CategoryDirectory indexes categories by ID for payload validation.
type CategoryDirectory map[string]Category

// NewCategoryDirectory builds a directory from a category list.
func NewCategoryDirectory(categories []Category) CategoryDirectory {
	dir := make(CategoryDirectory, len(categories))
	for _, c := range categories {
		dir[c.ID] = c
	}
	return dir
}
