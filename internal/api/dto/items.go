package dto

type MoveItemRequest struct {
	ItemID      string `json:"item_id"`
	FromStoreID string `json:"from_store_id"`
	ToStoreID   string `json:"to_store_id"`
}

type ResetItemRequest struct {
	ItemID string `json:"item_id"`
}
