package countries

// Country is one entry of the form's country select.
type Country struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// HO is kept for Honduras as the form has always sent it.
var catalogue = []Country{
	{Code: "NI", Label: "Nicaragua"},
	{Code: "CR", Label: "Costa Rica"},
	{Code: "PA", Label: "Panama"},
	{Code: "HO", Label: "Honduras"},
	{Code: "PE", Label: "Perú"},
}

// All returns the countries in display order.
func All() []Country {
	out := make([]Country, len(catalogue))
	copy(out, catalogue)
	return out
}

func Lookup(code string) (Country, bool) {
	for _, c := range catalogue {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}
