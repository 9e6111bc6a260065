package dto

type SlotDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DaySlotsDTO struct {
	Date  string    `json:"date"`
	Slots []SlotDTO `json:"slots"`
}

type BookableDTO struct {
	Bookable bool   `json:"bookable"`
	Reason   string `json:"reason"`
}
