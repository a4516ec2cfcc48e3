package cartclient

// CartSnapshot is the server-authoritative view of the cart. Snapshots are
// replaced wholesale on every successful call; nothing ever patches one
// locally.
type CartSnapshot struct {
	ItemCount  int        `json:"item_count"`
	TotalPrice int64      `json:"total_price"` // minor currency units
	Currency   string     `json:"currency,omitempty"`
	Items      []LineItem `json:"items"`
}

// LineItem is one product/variant entry in the cart. Key is stable across
// quantity changes and is the identity used for per-line sequencing.
type LineItem struct {
	Key       string `json:"key"`
	Quantity  int    `json:"quantity"`
	Title     string `json:"title,omitempty"`
	Price     int64  `json:"price,omitempty"`      // per unit, minor units
	LinePrice int64  `json:"line_price,omitempty"` // quantity * price, minor units
	URL       string `json:"url,omitempty"`
	Image     string `json:"image,omitempty"`
}

// Line returns the line item with the given key, or nil.
func (s *CartSnapshot) Line(key string) *LineItem {
	for i := range s.Items {
		if s.Items[i].Key == key {
			return &s.Items[i]
		}
	}
	return nil
}
