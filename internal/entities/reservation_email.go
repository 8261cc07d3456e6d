package entities

type ReservationEmailData struct {
	UserName           string
	RoomName           string
	StartTimeFormatted string
	EndTimeFormatted   string
	Status             string
	CurrentYear        int
}
