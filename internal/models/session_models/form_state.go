package session_models

type TravelStyle string

const (
	StyleRelax TravelStyle = "relax" // のんびり
	StyleTight TravelStyle = "tight" // しっかり
)

func (s TravelStyle) Valid() bool {
	return s == StyleRelax || s == StyleTight
}

// FormState is the trip form as the user has filled it in so far.
// Cities keeps insertion order and never holds duplicates.
type FormState struct {
	Country   string      `json:"country"`
	Cities    []string    `json:"cities"`
	Arrival   string      `json:"arrival"`
	Departure string      `json:"departure"`
	Style     TravelStyle `json:"style"`
}

func NewFormState() FormState {
	return FormState{Cities: []string{}, Style: StyleRelax}
}

// SetCountry always clears the selected cities, even when c is unchanged.
func (f *FormState) SetCountry(c string) {
	f.Country = c
	f.Cities = []string{}
}

func (f *FormState) ToggleCity(city string, included bool) {
	idx := -1
	for i, existing := range f.Cities {
		if existing == city {
			idx = i
			break
		}
	}

	if included {
		if idx < 0 {
			f.Cities = append(f.Cities, city)
		}
		return
	}

	if idx >= 0 {
		f.Cities = append(f.Cities[:idx:idx], f.Cities[idx+1:]...)
	}
}

func (f *FormState) SetArrival(ts string)   { f.Arrival = ts }
func (f *FormState) SetDeparture(ts string) { f.Departure = ts }
func (f *FormState) SetStyle(s TravelStyle) { f.Style = s }

func (f *FormState) HasCity(city string) bool {
	for _, c := range f.Cities {
		if c == city {
			return true
		}
	}
	return false
}

// Complete reports whether every field required for a plan request is filled.
// Style always carries a value so it is not checked.
func (f *FormState) Complete() bool {
	return f.Country != "" && len(f.Cities) > 0 && f.Arrival != "" && f.Departure != ""
}
