package models

import (
	"moviereviews/proj/internal/domain/fields"
	"time"
)

type User struct {
	ID           int64     `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email" db:"email"` // unique, compared case-sensitively
	PasswordHash []byte    `json:"-" db:"password_hash"`
	IsStaff      bool      `json:"-" db:"is_staff"`
	IsSuperuser  bool      `json:"-" db:"is_superuser"`
	DateJoined   time.Time `json:"date_joined" db:"date_joined"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type Token struct {
	Key       string    `db:"key"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

type Genre struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

type Movie struct {
	ID             int64       `json:"id" db:"id"`
	Title          string      `json:"title" db:"title"`
	Duration       string      `json:"duration" db:"duration"` // e.g. "120m"
	Premiere       fields.Date `json:"premiere" db:"premiere"`
	Classification int32       `json:"classification" db:"classification"`
	Synopsis       string      `json:"synopsis" db:"synopsis"`
	Genres         []Genre     `json:"genres" db:"-"`
	CreatedAt      time.Time   `json:"-" db:"created_at"`
}

// MovieUpdate holds a partial movie update, nil fields are left untouched.
// A non-nil Genres replaces the whole genre set.
type MovieUpdate struct {
	Title          *string
	Duration       *string
	Premiere       *fields.Date
	Classification *int32
	Synopsis       *string
	Genres         []string
}

const (
	RecomendationMustWatch   = "Must Watch"
	RecomendationShouldWatch = "Should Watch"
	RecomendationAvoidWatch  = "Avoid Watch"
	RecomendationNoOpinion   = "No Opinion"
)

var Recomendations = []string{
	RecomendationMustWatch,
	RecomendationShouldWatch,
	RecomendationAvoidWatch,
	RecomendationNoOpinion,
}

type Critic struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Review struct {
	ID            int64     `json:"id"`
	Stars         int       `json:"stars"`
	Text          string    `json:"review"`
	Spoilers      bool      `json:"spoilers"`
	Recomendation *string   `json:"recomendation"`
	MovieID       int64     `json:"movie_id"`
	CriticID      int64     `json:"-"`
	Critic        Critic    `json:"critic"`
	CreatedAt     time.Time `json:"-"`
}
