package browser

import (
	"fmt"
	"sort"

	"foodfacts/explorer/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortOrder string

const (
	SortNameAsc   SortOrder = "name-asc"
	SortNameDesc  SortOrder = "name-desc"
	SortGradeAsc  SortOrder = "grade-asc"
	SortGradeDesc SortOrder = "grade-desc"
)

// ParseSortOrder validates a sort order given on the command line.
func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(s); order {
	case SortNameAsc, SortNameDesc, SortGradeAsc, SortGradeDesc:
		return order, nil
	default:
		return "", fmt.Errorf("unknown sort order %q (want name-asc, name-desc, grade-asc or grade-desc)", s)
	}
}

// sortProducts stably re-orders the slice in place. Name comparison is
// locale-aware; a missing name sorts as the empty string, so it comes
// first ascending. A missing grade sorts as "z", the worst grade.
func sortProducts(products []domain.Product, order SortOrder) {
	switch order {
	case SortNameAsc, SortNameDesc:
		coll := collate.New(language.Und) // collators are not safe for concurrent use
		sort.SliceStable(products, func(i, j int) bool {
			cmp := coll.CompareString(products[i].Name, products[j].Name)
			if order == SortNameDesc {
				return cmp > 0
			}
			return cmp < 0
		})
	case SortGradeAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return gradeKey(products[i]) < gradeKey(products[j])
		})
	case SortGradeDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return gradeKey(products[i]) > gradeKey(products[j])
		})
	}
}

func gradeKey(p domain.Product) string {
	if p.Grade == "" {
		return "z"
	}
	return p.Grade
}
