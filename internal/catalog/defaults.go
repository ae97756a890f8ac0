package catalog

import "github.com/VedantKadlaKK/bookverse/internal/domain"

var defaultBooks = []domain.Book{
	{ID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Genre: domain.GenreFiction, Price: 299, Image: "images/book1.jpg", Description: "A classic American novel set in the Jazz Age"},
	{ID: 2, Title: "Murder on the Orient Express", Author: "Agatha Christie", Genre: domain.GenreMystery, Price: 349, Image: "images/book2.jpg", Description: "A thrilling murder mystery by the queen of crime"},
	{ID: 3, Title: "Pride and Prejudice", Author: "Jane Austen", Genre: domain.GenreRomance, Price: 279, Image: "images/book3.jpg", Description: "A timeless romance novel"},
	{ID: 4, Title: "Dune", Author: "Frank Herbert", Genre: domain.GenreSciFi, Price: 399, Image: "images/book4.jpg", Description: "Epic science fiction saga"},
	{ID: 5, Title: "The Hobbit", Author: "J.R.R. Tolkien", Genre: domain.GenreFantasy, Price: 329, Image: "images/book5.jpg", Description: "A magical adventure in Middle-earth"},
	{ID: 6, Title: "Sapiens", Author: "Yuval Noah Harari", Genre: domain.GenreNonFiction, Price: 449, Image: "images/book6.jpg", Description: "A brief history of humankind"},
	{ID: 7, Title: "The Silent Patient", Author: "Alex Michaelides", Genre: domain.GenreMystery, Price: 379, Image: "images/book7.jpg", Description: "A psychological thriller"},
	{ID: 8, Title: "Neuromancer", Author: "William Gibson", Genre: domain.GenreSciFi, Price: 359, Image: "images/book8.jpg", Description: "Cyberpunk classic"},
}

// Default returns the built-in BookVerse catalog.
func Default() *Catalog {
	c, err := New(defaultBooks)
	if err != nil {
		panic(err)
	}
	return c
}
