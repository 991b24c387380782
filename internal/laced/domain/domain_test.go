package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM \n"))
}

func TestSessionValidAt(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	s := Session{ExpiresAt: exp}

	require.True(t, s.ValidAt(exp.Add(-time.Nanosecond)))
	require.False(t, s.ValidAt(exp), "expiry instant is already invalid")
	require.False(t, s.ValidAt(exp.Add(time.Second)))

	g := GuestSession{ExpiresAt: exp}
	require.True(t, g.ValidAt(exp.Add(-time.Minute)))
	require.False(t, g.ValidAt(exp))
}

func TestProductPrice(t *testing.T) {
	require.Equal(t, "150.00", Product{PriceCents: 15000}.Price())
	require.Equal(t, "0.05", Product{PriceCents: 5}.Price())
	require.Equal(t, "99.99", Product{PriceCents: 9999}.Price())
}

func TestProductSortValid(t *testing.T) {
	for _, s := range []ProductSort{"", SortFeatured, SortNewest, SortPriceAsc, SortPriceDesc, SortNameAsc} {
		require.True(t, s.Valid(), s)
	}
	require.False(t, ProductSort("rating").Valid())
}
