package entities

// ShopItem is a purchasable catalog entry
type ShopItem struct {
	ItemID      string
	Name        string
	Description string
	Price       int64
	Emoji       string
	Usable      bool
}
