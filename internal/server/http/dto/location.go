package dto

// Slot addresses a rack/shelf/bin position.
type Slot struct {
	Rack  int `json:"rack" binding:"required,min=1"`
	Shelf int `json:"shelf" binding:"required,min=1"`
	Bin   int `json:"bin" binding:"required,min=1"`
}

// SuggestionResponse is the first free slot found by a scan.
type SuggestionResponse struct {
	Code      string `json:"code"`
	Rack      int    `json:"rack"`
	Shelf     int    `json:"shelf"`
	Bin       int    `json:"bin"`
	Exhausted bool   `json:"exhausted"`
}

// ReserveRequest carries the metadata stored with a reservation.
type ReserveRequest struct {
	Category    string `json:"category"`
	ProductName string `json:"productName"`
}

// LocationResponse is a reserved slot document.
type LocationResponse struct {
	Code   string         `json:"code"`
	Fields map[string]any `json:"fields"`
}
