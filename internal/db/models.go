package db

import "time"

type User struct {
	ID           int
	Email        string
	Nombre       string
	Rol          string
	PasswordHash string
	CreatedAt    time.Time
}

type Room struct {
	ID        int
	Name      string
	Capacity  int
	Floor     int
	Equipment []string
	CreatedAt time.Time
}

type TimeSlot struct {
	ID        string
	Label     string
	StartTime string
	EndTime   string
}

type Reservation struct {
	ID                  string
	RoomID              int
	UserID              *int
	HolderEmail         string
	StartTime           time.Time
	EndTime             time.Time
	Status              string
	AddToGoogleCalendar bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
