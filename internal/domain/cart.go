package domain

// LineItem is one cart entry: a product snapshot copied at add time plus
// a quantity. Key is the product code, or a synthetic unique value when
// the product carries no code, so unrelated code-less products never
// merge into one line.
type LineItem struct {
	Key      string  `json:"key"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"` // always >= 1
}
