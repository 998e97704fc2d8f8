package model

// Movie represents a catalogued film. Description and Genre are pointers so a
// missing value serializes as JSON null instead of an empty string.
type Movie struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"size:255;not null"`
	Description *string `json:"description" gorm:"type:text"`
	Year        int     `json:"year" gorm:"not null"`
	Genre       *string `json:"genre" gorm:"size:100"`
	Rating      float64 `json:"rating" gorm:"not null;default:0"`
}

// TableName keeps the table name the schema was created with.
func (Movie) TableName() string {
	return "peliculas"
}
