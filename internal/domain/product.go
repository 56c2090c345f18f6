package domain

// Product is the canonical product record used by the rest of the
// application. It is produced from a SourceProduct by Normalize, which
// collapses the source's alternate field spellings into single fields.
type Product struct {
	Code            string     `json:"code"`
	Name            string     `json:"name"`
	ImageURL        string     `json:"image_url,omitempty"`
	Grade           string     `json:"grade,omitempty"`
	CategoryTags    []string   `json:"category_tags,omitempty"`
	Categories      string     `json:"categories,omitempty"`
	Brands          string     `json:"brands,omitempty"`
	Labels          string     `json:"labels,omitempty"`
	IngredientsText string     `json:"ingredients_text,omitempty"`
	Nutriments      Nutriments `json:"nutriments"`
}

// Nutriments holds per-100g nutritional values. Every field is
// independently optional in the source data, so absence must stay
// distinguishable from zero.
type Nutriments struct {
	Energy        *float64 `json:"energy,omitempty"`
	EnergyKcal    *float64 `json:"energy_kcal,omitempty"`
	Fat           *float64 `json:"fat,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates,omitempty"`
	Proteins      *float64 `json:"proteins,omitempty"`
	Salt          *float64 `json:"salt,omitempty"`
}

// DisplayName returns the product name, or a placeholder when the source
// record carried none.
func (p Product) DisplayName() string {
	if p.Name == "" {
		return "Unknown Product"
	}
	return p.Name
}

// GradeLabel returns the nutrition grade for display purposes.
func (p Product) GradeLabel() string {
	if p.Grade == "" {
		return "unknown"
	}
	return p.Grade
}

// SourceProduct mirrors the OpenFoodFacts wire format for a single
// product. Any field may be absent; the identifier itself may be missing
// or duplicated across records.
type SourceProduct struct {
	Code             string           `json:"code"`
	ProductName      string           `json:"product_name"`
	ImageURL         string           `json:"image_url"`
	ImageFrontURL    string           `json:"image_front_url"`
	ImageSmallURL    string           `json:"image_small_url"`
	CategoriesTags   []string         `json:"categories_tags"`
	Categories       string           `json:"categories"`
	Brands           string           `json:"brands"`
	Labels           string           `json:"labels"`
	IngredientsText  string           `json:"ingredients_text"`
	NutritionGrades  string           `json:"nutrition_grades"`
	NutritionGradeFr string           `json:"nutrition_grade_fr"`
	Nutriments       SourceNutriments `json:"nutriments"`
}

type SourceNutriments struct {
	Energy        *float64 `json:"energy"`
	EnergyKcal    *float64 `json:"energy-kcal"`
	Fat           *float64 `json:"fat"`
	Carbohydrates *float64 `json:"carbohydrates"`
	Proteins      *float64 `json:"proteins"`
	Salt          *float64 `json:"salt"`
}

// Normalize converts a raw source record into the canonical Product.
// The source exposes the nutrition grade under two field names and the
// image under three; normalization picks the first populated candidate
// once, at ingestion, so no downstream code probes alternate fields.
func Normalize(src SourceProduct) Product {
	grade := src.NutritionGrades
	if grade == "" {
		grade = src.NutritionGradeFr
	}

	image := src.ImageURL
	if image == "" {
		image = src.ImageFrontURL
	}
	if image == "" {
		image = src.ImageSmallURL
	}

	return Product{
		Code:            src.Code,
		Name:            src.ProductName,
		ImageURL:        image,
		Grade:           grade,
		CategoryTags:    src.CategoriesTags,
		Categories:      src.Categories,
		Brands:          src.Brands,
		Labels:          src.Labels,
		IngredientsText: src.IngredientsText,
		Nutriments: Nutriments{
			Energy:        src.Nutriments.Energy,
			EnergyKcal:    src.Nutriments.EnergyKcal,
			Fat:           src.Nutriments.Fat,
			Carbohydrates: src.Nutriments.Carbohydrates,
			Proteins:      src.Nutriments.Proteins,
			Salt:          src.Nutriments.Salt,
		},
	}
}

// NormalizeAll converts a list of source records in order.
func NormalizeAll(srcs []SourceProduct) []Product {
	if len(srcs) == 0 {
		return nil
	}
	out := make([]Product, len(srcs))
	for i, src := range srcs {
		out[i] = Normalize(src)
	}
	return out
}

// Category is one entry of the catalog's category list.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DisplayName falls back to the tag itself when the source has no
// human-readable name for it.
func (c Category) DisplayName() string {
	if c.Name == "" {
		return c.ID
	}
	return c.Name
}
