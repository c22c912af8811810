package core

// ExpenseType is the top-level classification owning a category list.
type ExpenseType string

const (
	Personal ExpenseType = "Personal"
	Business ExpenseType = "Business"
)

// Taxonomy is the static two-level category lookup. It is built once at
// startup and never mutated afterwards; all accessors return copies.
type Taxonomy struct {
	types      []ExpenseType
	categories map[ExpenseType][]string
	typeOf     map[string]ExpenseType
}

// NewTaxonomy builds a taxonomy from ordered (type, categories) pairs.
// Category order within a type is preserved for selectors.
func NewTaxonomy(types []ExpenseType, categories map[ExpenseType][]string) Taxonomy {
	t := Taxonomy{
		types:      append([]ExpenseType(nil), types...),
		categories: make(map[ExpenseType][]string, len(categories)),
		typeOf:     make(map[string]ExpenseType),
	}
	for _, et := range t.types {
		cats := append([]string(nil), categories[et]...)
		t.categories[et] = cats
		for _, c := range cats {
			if _, dup := t.typeOf[c]; !dup {
				t.typeOf[c] = et
			}
		}
	}
	return t
}

// DefaultTaxonomy returns the built-in Personal/Business category lists.
func DefaultTaxonomy() Taxonomy {
	return NewTaxonomy(
		[]ExpenseType{Personal, Business},
		map[ExpenseType][]string{
			Personal: {
				"Rent / Mortgage", "Utilities (Electricity, Water, Gas)", "Groceries",
				"Transportation (Fuel, Public Transport, Parking)", "Internet and Mobile",
				"Insurance – Health", "Insurance – Car", "Insurance – Home",
				"Loan Payments", "Subscriptions (Netflix, Spotify, etc.)",
				"Medical / Health Expenses", "Education / Tuition", "Clothing",
				"Personal Care (Salon, Grooming, etc.)", "Dining Out",
				"Travel / Vacation", "Entertainment (Movies, Games, Events)",
				"Gifts & Donations", "Childcare", "Pet Expenses",
				"Home Maintenance / Repairs", "Emergency Fund", "Investments",
				"Hobby / Leisure Expenses", "Miscellaneous",
				"Crypto Transaction",
			},
			Business: {
				"Office Rent", "Office Utilities", "Office Supplies & Equipment",
				"Employee Salaries & Wages", "Contractor / Freelancer Payments",
				"Software & Subscriptions (Business)", "Advertising & Marketing",
				"Business Internet & Phone", "Business Travel & Accommodation",
				"Client Meals & Entertainment", "Business Insurance (Liability, etc.)",
				"Training & Development", "Taxes & Legal Fees", "Bank Charges & Fees",
				"Business Maintenance & Repairs",
			},
		},
	)
}

// Types returns the expense types in declaration order.
func (t Taxonomy) Types() []ExpenseType {
	return append([]ExpenseType(nil), t.types...)
}

// CategoriesFor returns the ordered category list for an expense type.
// Unknown types yield an empty list.
func (t Taxonomy) CategoriesFor(et ExpenseType) []string {
	return append([]string(nil), t.categories[et]...)
}

// Contains reports whether the category belongs to any expense type.
func (t Taxonomy) Contains(category string) bool {
	_, ok := t.typeOf[category]
	return ok
}

// TypeOf returns the expense type owning the category, if any.
func (t Taxonomy) TypeOf(category string) (ExpenseType, bool) {
	et, ok := t.typeOf[category]
	return et, ok
}
