package response_models

// PlanServiceResponse is what the plan generation service returns on success.
type PlanServiceResponse struct {
	Plan string `json:"plan"`
}

type PlanResponse struct {
	Plan  string   `json:"plan"`
	Lines []string `json:"lines"`
}

type CountryCities struct {
	Country string   `json:"country"`
	Cities  []string `json:"cities"`
}
