package models

import "moviereviews/proj/internal/storage/postgres"

type Models struct {
	User   *UserModel
	Token  *TokenModel
	Movie  *MovieModel
	Review *ReviewModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		User:   &UserModel{db.Conn},
		Token:  &TokenModel{db.Conn},
		Movie:  &MovieModel{db.Conn},
		Review: &ReviewModel{db.Conn},
	}
}
