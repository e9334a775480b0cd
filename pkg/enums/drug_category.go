package enums

import "fmt"

// DrugCategory describes the allowed values for the `category` column in inventory_items.
type DrugCategory string

const (
	DrugCategoryTraditionalMedicine DrugCategory = "TraditionalMedicine"
	DrugCategoryChemicalDrug        DrugCategory = "ChemicalDrug"
	DrugCategoryMedicalDevice       DrugCategory = "MedicalDevice"
	DrugCategoryRawMaterial         DrugCategory = "RawMaterial"
)

// DrugCategoryAll is the sentinel filter value that disables category filtering.
const DrugCategoryAll = "All"

var validDrugCategories = []DrugCategory{
	DrugCategoryTraditionalMedicine,
	DrugCategoryChemicalDrug,
	DrugCategoryMedicalDevice,
	DrugCategoryRawMaterial,
}

// IsValid reports whether the value matches the canonical drug category enum.
func (d DrugCategory) IsValid() bool {
	for _, candidate := range validDrugCategories {
		if candidate == d {
			return true
		}
	}
	return false
}

// String returns the raw enum value.
func (d DrugCategory) String() string {
	return string(d)
}

// ParseDrugCategory converts the raw string to DrugCategory.
func ParseDrugCategory(value string) (DrugCategory, error) {
	for _, candidate := range validDrugCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid drug category %q", value)
}
