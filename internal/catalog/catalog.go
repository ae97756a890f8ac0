package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
)

const (
	// SuggestMinQuery is the shortest query that produces suggestions.
	SuggestMinQuery = 2
	// SuggestLimit caps the number of suggestions returned.
	SuggestLimit = 5
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrInvalidBook  = errors.New("invalid catalog entry")
)

// Catalog is the read-only, ordered list of purchasable books.
type Catalog struct {
	books []domain.Book
	index map[int64]int
}

// New validates books and builds a catalog. The slice is copied.
func New(books []domain.Book) (*Catalog, error) {
	c := &Catalog{
		books: make([]domain.Book, 0, len(books)),
		index: make(map[int64]int, len(books)),
	}
	for _, b := range books {
		if err := validate(b); err != nil {
			return nil, err
		}
		if _, dup := c.index[b.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidBook, b.ID)
		}
		c.index[b.ID] = len(c.books)
		c.books = append(c.books, b)
	}
	return c, nil
}

func validate(b domain.Book) error {
	if b.ID <= 0 {
		return fmt.Errorf("%w: id %d must be positive", ErrInvalidBook, b.ID)
	}
	if b.Price < 0 {
		return fmt.Errorf("%w: book %d has negative price", ErrInvalidBook, b.ID)
	}
	if !b.Genre.Valid() {
		return fmt.Errorf("%w: book %d has unknown genre %q", ErrInvalidBook, b.ID, b.Genre)
	}
	if strings.TrimSpace(b.Title) == "" {
		return fmt.Errorf("%w: book %d has no title", ErrInvalidBook, b.ID)
	}
	return nil
}

func (c *Catalog) Find(id int64) (domain.Book, error) {
	i, ok := c.index[id]
	if !ok {
		return domain.Book{}, ErrBookNotFound
	}
	return c.books[i], nil
}

func (c *Catalog) All() []domain.Book {
	out := make([]domain.Book, len(c.books))
	copy(out, c.books)
	return out
}

func (c *Catalog) Len() int {
	return len(c.books)
}

// Search matches term case-insensitively against title or author. An empty
// genre matches every genre.
func (c *Catalog) Search(term string, genre domain.Genre) []domain.Book {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]domain.Book, 0, len(c.books))
	for _, b := range c.books {
		if genre != "" && b.Genre != genre {
			continue
		}
		if matches(b, term) {
			out = append(out, b)
		}
	}
	return out
}

// Suggest returns up to SuggestLimit books for a search-as-you-type box.
func (c *Catalog) Suggest(query string) []domain.Book {
	query = strings.ToLower(strings.TrimSpace(query))
	if len([]rune(query)) < SuggestMinQuery {
		return []domain.Book{}
	}
	out := make([]domain.Book, 0, SuggestLimit)
	for _, b := range c.books {
		if len(out) == SuggestLimit {
			break
		}
		if matches(b, query) {
			out = append(out, b)
		}
	}
	return out
}

// Genres lists the genres present in the catalog, in catalog order.
func (c *Catalog) Genres() []domain.Genre {
	seen := make(map[domain.Genre]bool)
	var out []domain.Genre
	for _, b := range c.books {
		if !seen[b.Genre] {
			seen[b.Genre] = true
			out = append(out, b.Genre)
		}
	}
	return out
}

func matches(b domain.Book, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Author), term)
}
