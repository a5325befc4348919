package models

// CartEntry is a pending room selection held server-side per session. The
// roomType/price/maxGuests/maxAvailable fields are a snapshot taken at the
// time of the first add and stored verbatim; quantity is always clamped to
// [0, MaxAvailable].
type CartEntry struct {
	RoomID       uint    `json:"roomId"`
	RoomType     string  `json:"roomType"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	MaxGuests    int     `json:"maxGuests"`
	MaxAvailable int     `json:"maxAvailable"`
}
