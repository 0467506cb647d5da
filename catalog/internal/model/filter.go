package model

type ProductsFilter struct {
	BusinessIDs []string
	Categories  []string
	Forms       []string
	Species     []string
	// OnlyActive drops products with status 0.
	OnlyActive bool
}
