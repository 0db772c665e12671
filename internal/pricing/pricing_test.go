package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "piqueunique/pkg/errors"
)

func TestBasePrice_Tiers(t *testing.T) {
	cases := []struct {
		guests int
		want   int
	}{
		{2, 200},
		{3, 240},
		{6, 240},
		{7, 290},
		{10, 290},
		{11, 380},
		{14, 380},
	}

	for _, tc := range cases {
		got, err := BasePrice(tc.guests)
		require.NoError(t, err, "guests=%d", tc.guests)
		assert.Equal(t, tc.want, got, "guests=%d", tc.guests)
	}
}

func TestBasePrice_RejectsOutOfBand(t *testing.T) {
	for _, guests := range []int{-1, 0, 1, 15, 100} {
		_, err := BasePrice(guests)
		require.Error(t, err, "guests=%d", guests)
		assert.Equal(t, apperrors.CodeValidation, apperrors.AsAppError(err).Code)
	}
}

func TestQuote_NoAddOns(t *testing.T) {
	got, err := Quote(2, nil)
	require.NoError(t, err)
	assert.Equal(t, Breakdown{BasePrice: 200, AdditionalPrice: 0, TotalPrice: 200}, got)
}

func TestQuote_PerGuestAddOn(t *testing.T) {
	// painting is 10 per guest.
	got, err := Quote(7, []string{"painting"})
	require.NoError(t, err)
	assert.Equal(t, 70, got.AdditionalPrice)
	assert.Equal(t, 360, got.TotalPrice)
}

func TestQuote_PerFiveGuestsAddOn(t *testing.T) {
	// acala is 25 per started group of five.
	got, err := Quote(4, []string{"acala"})
	require.NoError(t, err)
	assert.Equal(t, 25, got.AdditionalPrice)

	got, err = Quote(6, []string{"acala"})
	require.NoError(t, err)
	assert.Equal(t, 50, got.AdditionalPrice)

	got, err = Quote(10, []string{"acala"})
	require.NoError(t, err)
	assert.Equal(t, 50, got.AdditionalPrice)
}

func TestQuote_FlatAddOn(t *testing.T) {
	got, err := Quote(8, []string{"fotosesija"})
	require.NoError(t, err)
	assert.Equal(t, 80, got.AdditionalPrice)

	got, err = Quote(2, []string{"fotosesija"})
	require.NoError(t, err)
	assert.Equal(t, 80, got.AdditionalPrice)
}

func TestQuote_CombinedAddOns(t *testing.T) {
	got, err := Quote(7, []string{"painting", "acala", "fotosesija"})
	require.NoError(t, err)
	// painting 10*7 + acala 25*2 + fotosesija 80
	assert.Equal(t, 200, got.AdditionalPrice)
	assert.Equal(t, 290+200, got.TotalPrice)
}

func TestQuote_DuplicatesCountOnce(t *testing.T) {
	got, err := Quote(4, []string{"acala", "acala", "acala"})
	require.NoError(t, err)
	assert.Equal(t, 25, got.AdditionalPrice)
}

func TestQuote_UnknownAddOn(t *testing.T) {
	_, err := Quote(4, []string{"jacuzzi"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.AsAppError(err).Code)
}

func TestQuote_Deterministic(t *testing.T) {
	first, err := Quote(9, []string{"painting", "sup_lenta", "smuikas"})
	require.NoError(t, err)
	second, err := Quote(9, []string{"painting", "sup_lenta", "smuikas"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQuote_TotalIsBasePlusAdditional(t *testing.T) {
	for guests := MinGuests; guests <= MaxGuests; guests++ {
		got, err := Quote(guests, []string{"painting", "acala"})
		require.NoError(t, err)
		assert.Equal(t, got.BasePrice+got.AdditionalPrice, got.TotalPrice, "guests=%d", guests)
	}
}

func TestAddOns_CatalogComplete(t *testing.T) {
	ids := make(map[string]bool)
	for _, a := range AddOns() {
		ids[a.ID] = true
		assert.Positive(t, a.Price, "add-on %s", a.ID)
	}
	for _, want := range []string{"painting", "acala", "fotosesija", "smuikas", "smelio_zaislai", "sup_lenta"} {
		assert.True(t, ids[want], "missing add-on %s", want)
	}
}
