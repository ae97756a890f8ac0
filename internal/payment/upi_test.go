package payment

import (
	"net/url"
	"testing"

	"github.com/VedantKadlaKK/bookverse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUPILink(t *testing.T) {
	order := &domain.Order{ID: "BV0123ABC", Total: 798}

	ref, err := UPILink(order, Config{Payee: "bookverse@paytm"})
	require.NoError(t, err)

	assert.Equal(t,
		"upi://pay?pa=bookverse%40paytm&pn=BookVerse&am=798&cu=INR&tn=BookVerse%20Order%20BV0123ABC",
		ref.Link)
	assert.Equal(t, "BookVerse Order BV0123ABC", ref.Note)
	assert.Equal(t, int64(798), ref.Amount)
	assert.Equal(t, "bookverse@paytm", ref.Payee)
}

func TestUPILink_CustomPayeeName(t *testing.T) {
	ref, err := UPILink(&domain.Order{ID: "BV1", Total: 299}, Config{Payee: "shop@okicici", PayeeName: "Book Verse"})
	require.NoError(t, err)
	assert.Contains(t, ref.Link, "pn=Book%20Verse")
	assert.Contains(t, ref.Link, "am=299")
}

func TestUPILink_EscapesEveryParameter(t *testing.T) {
	ref, err := UPILink(&domain.Order{ID: "BV1", Total: 100}, Config{Payee: "books&co@upi", PayeeName: "Books & Co = 1+1"})
	require.NoError(t, err)

	assert.Equal(t,
		"upi://pay?pa=books%26co%40upi&pn=Books%20%26%20Co%20%3D%201%2B1&am=100&cu=INR&tn=BookVerse%20Order%20BV1",
		ref.Link)

	u, err := url.Parse(ref.Link)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "books&co@upi", q.Get("pa"))
	assert.Equal(t, "Books & Co = 1+1", q.Get("pn"))
	assert.Equal(t, "100", q.Get("am"))
	assert.Len(t, q, 5)
}

func TestUPILink_NoPayee(t *testing.T) {
	_, err := UPILink(&domain.Order{ID: "BV1"}, Config{Payee: "  "})
	assert.ErrorIs(t, err, ErrNoPayee)
}
