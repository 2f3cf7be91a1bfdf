package dto

// RankDTO for POST /api/books/rank_book/:idBook
type RankDTO struct {
	Ranking int `json:"ranking" binding:"required"`
}
