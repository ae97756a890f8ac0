package domain

type Genre string

const (
	GenreFiction    Genre = "fiction"
	GenreMystery    Genre = "mystery"
	GenreRomance    Genre = "romance"
	GenreSciFi      Genre = "sci-fi"
	GenreFantasy    Genre = "fantasy"
	GenreNonFiction Genre = "non-fiction"
)

var genres = []Genre{
	GenreFiction,
	GenreMystery,
	GenreRomance,
	GenreSciFi,
	GenreFantasy,
	GenreNonFiction,
}

// Genres returns every known genre in display order.
func Genres() []Genre {
	out := make([]Genre, len(genres))
	copy(out, genres)
	return out
}

func (g Genre) Valid() bool {
	for _, known := range genres {
		if g == known {
			return true
		}
	}
	return false
}

func (g Genre) String() string {
	return string(g)
}

// Book is a catalog entry. Prices are whole rupees.
type Book struct {
	ID          int64  `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Author      string `json:"author" yaml:"author"`
	Genre       Genre  `json:"genre" yaml:"genre"`
	Price       int64  `json:"price" yaml:"price"`
	Image       string `json:"image" yaml:"image"`
	Description string `json:"description" yaml:"description"`
}
