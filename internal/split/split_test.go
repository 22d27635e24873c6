package split

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendwise/internal/core"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func entries(pairs ...any) []PaidEntry {
	var out []PaidEntry
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, PaidEntry{Name: pairs[i].(string), Paid: dec(pairs[i+1].(string))})
	}
	return out
}

func TestSettleGroupAllSettled(t *testing.T) {
	s, err := SettleGroup(dec("300"), entries("A", "100", "B", "100", "C", "100"))
	require.NoError(t, err)
	assert.True(t, s.FairShare.Equal(dec("100")))
	require.Len(t, s.People, 3)
	for _, p := range s.People {
		assert.Equal(t, Settled, p.Status, p.Name)
		assert.True(t, p.Amount.IsZero())
	}
}

func TestSettleGroupOwedAndOwes(t *testing.T) {
	s, err := SettleGroup(dec("300"), entries("A", "200", "B", "100"))
	require.NoError(t, err)
	assert.True(t, s.FairShare.Equal(dec("150")))

	require.Len(t, s.People, 2)
	assert.Equal(t, "A", s.People[0].Name)
	assert.Equal(t, Receives, s.People[0].Status)
	assert.True(t, s.People[0].Amount.Equal(dec("50")))

	assert.Equal(t, "B", s.People[1].Name)
	assert.Equal(t, Pays, s.People[1].Status)
	assert.True(t, s.People[1].Amount.Equal(dec("50")))
}

func TestSettleGroupTolerance(t *testing.T) {
	s, err := SettleGroup(dec("100"), entries("A", "50.99", "B", "49.01", "C", "0"))
	require.NoError(t, err)
	// fair share 33.33.., A and B are well above it, C pays
	assert.Equal(t, Receives, s.People[0].Status)
	assert.Equal(t, Pays, s.People[2].Status)

	s, err = SettleGroup(dec("100"), entries("A", "50.99", "B", "49.01"))
	require.NoError(t, err)
	assert.Equal(t, Settled, s.People[0].Status)
	assert.Equal(t, Settled, s.People[1].Status)

	s, err = SettleGroup(dec("100"), entries("A", "51", "B", "49"))
	require.NoError(t, err)
	assert.Equal(t, Receives, s.People[0].Status)
	assert.True(t, s.People[0].Amount.Equal(dec("1")))
	assert.Equal(t, Pays, s.People[1].Status)
}

func TestSettleGroupErrors(t *testing.T) {
	_, err := SettleGroup(decimal.Zero, entries("A", "1"))
	assert.ErrorIs(t, err, ErrInvalidTotal)

	_, err = SettleGroup(dec("-10"), entries("A", "1"))
	assert.ErrorIs(t, err, ErrInvalidTotal)

	_, err = SettleGroup(dec("10"), nil)
	assert.ErrorIs(t, err, ErrNoParticipants)
}

func TestParsePaidLines(t *testing.T) {
	text := "Asha, 200\n\n  Ben ,100.5 \nbad line\nC, x\n, 20\nD, 1, 2\nEve,-5\n"
	got := ParsePaidLines(text)
	require.Len(t, got, 3)
	assert.Equal(t, "Asha", got[0].Name)
	assert.True(t, got[0].Paid.Equal(dec("200")))
	assert.Equal(t, "Ben", got[1].Name)
	assert.True(t, got[1].Paid.Equal(dec("100.5")))
	assert.Equal(t, "Eve", got[2].Name)
	assert.True(t, got[2].Paid.Equal(dec("-5")))

	assert.Empty(t, ParsePaidLines("nothing here"))
}

func TestSplitItems(t *testing.T) {
	items := []core.SplitItem{
		{Name: "Pizza", Price: dec("100"), People: []string{"A", "B"}},
		{Name: "Coke", Price: dec("50"), People: []string{"B"}},
	}
	shares, err := SplitItems(items)
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, "A", shares[0].Name)
	assert.Equal(t, "B", shares[1].Name)

	m := shares.Map()
	assert.True(t, m["A"].Equal(dec("50")))
	assert.True(t, m["B"].Equal(dec("100")))
}

func TestSplitItemsExactNames(t *testing.T) {
	items := []core.SplitItem{
		{Name: "Tea", Price: dec("30"), People: []string{"ann", "Ann", "Ann "}},
	}
	shares, err := SplitItems(items)
	require.NoError(t, err)
	assert.Len(t, shares, 3)
	for _, s := range shares {
		assert.True(t, s.Amount.Equal(dec("10")), s.Name)
	}
}

func TestSplitItemsEmpty(t *testing.T) {
	_, err := SplitItems(nil)
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestUPILink(t *testing.T) {
	link := UPILink("room@upi", dec("150"), "Room settlement")
	assert.Equal(t, "upi://pay?am=150.00&pa=room%40upi&tn=Room+settlement", link)
}
