package pricing

// PricingUnit determines how an add-on price scales with the party size.
type PricingUnit string

const (
	// UnitFlat is charged once per booking ("vienkartinė").
	UnitFlat PricingUnit = "vienkartine"
	// UnitPerGuest is charged per guest ("asm").
	UnitPerGuest PricingUnit = "asm"
	// UnitPerFiveGuests is charged per started group of five guests
	// ("5 asmenys").
	UnitPerFiveGuests PricingUnit = "penkiems"
)

// AddOn is an optional paid service attached to a booking.
type AddOn struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Price int         `json:"price"`
	Unit  PricingUnit `json:"unit"`
}

// catalog is the fixed add-on offering. Prices are euros.
var catalog = map[string]AddOn{
	"painting":       {ID: "painting", Name: "Tapymo užsiėmimas", Price: 10, Unit: UnitPerGuest},
	"acala":          {ID: "acala", Name: "Acala arbatos degustacija", Price: 25, Unit: UnitPerFiveGuests},
	"fotosesija":     {ID: "fotosesija", Name: "Fotosesija", Price: 80, Unit: UnitFlat},
	"smuikas":        {ID: "smuikas", Name: "Gyva smuiko muzika", Price: 120, Unit: UnitFlat},
	"smelio_zaislai": {ID: "smelio_zaislai", Name: "Smėlio žaislai vaikams", Price: 15, Unit: UnitFlat},
	"sup_lenta":      {ID: "sup_lenta", Name: "SUP lentos nuoma", Price: 30, Unit: UnitPerGuest},
}

// AddOns returns the full catalog, for rendering the booking form.
func AddOns() []AddOn {
	out := make([]AddOn, 0, len(catalog))
	for _, a := range catalog {
		out = append(out, a)
	}
	return out
}

// Lookup returns the add-on for an identifier.
func Lookup(id string) (AddOn, bool) {
	a, ok := catalog[id]
	return a, ok
}
