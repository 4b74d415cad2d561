package services

type CatalogServiceInterface interface {
	Countries() []string
	CitiesFor(country string) []string
	Offers(country, city string) bool
}

var countryOrder = []string{"イタリア", "フランス", "スペイン"}

var countryCities = map[string][]string{
	"イタリア": {"ローマ", "ミラノ", "フィレンツェ"},
	"フランス": {"パリ", "リヨン", "ニース"},
	"スペイン": {"バルセロナ", "マドリード", "セビリア"},
}

type CatalogService struct{}

func NewCatalogService() CatalogServiceInterface {
	return &CatalogService{}
}

func (s *CatalogService) Countries() []string {
	out := make([]string, len(countryOrder))
	copy(out, countryOrder)
	return out
}

// CitiesFor returns the catalog entry in display order, or an empty slice for unknown countries.
func (s *CatalogService) CitiesFor(country string) []string {
	cities := countryCities[country]
	out := make([]string, len(cities))
	copy(out, cities)
	return out
}

func (s *CatalogService) Offers(country, city string) bool {
	for _, c := range countryCities[country] {
		if c == city {
			return true
		}
	}
	return false
}
