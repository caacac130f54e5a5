package taxonomy

// Scope1Category is a Scope 1 source family of the GHG Protocol report.
type Scope1Category struct {
	Code string
	Name string
}

var scope1Categories = []Scope1Category{
	{"1.1", "Stationary Combustion"},
	{"1.2", "Mobile Combustion"},
	{"1.4", "Fugitive Emissions"},
	{"1.5", "Biomass"},
}

var scope3Categories = [15]string{
	"Purchased Goods and Services",
	"Capital Goods",
	"Fuel and Energy Related Activities",
	"Upstream Transportation and Distribution",
	"Waste Generated in Operations",
	"Business Travel",
	"Employee Commuting",
	"Upstream Leased Assets",
	"Downstream Transportation and Distribution",
	"Processing of Sold Products",
	"Use of Sold Products",
	"End-of-Life Treatment of Sold Products",
	"Downstream Leased Assets",
	"Franchises",
	"Investments",
}

// Scope1Categories returns the Scope 1 source families in report order.
func Scope1Categories() []Scope1Category {
	out := make([]Scope1Category, len(scope1Categories))
	copy(out, scope1Categories)
	return out
}

// Scope3CategoryCount is the number of GHG Protocol Scope 3 categories.
const Scope3CategoryCount = len(scope3Categories)

// Scope3CategoryName returns the name of GHG Protocol Scope 3 category n (1..15).
func Scope3CategoryName(n int) string {
	if n < 1 || n > len(scope3Categories) {
		return ""
	}
	return scope3Categories[n-1]
}
