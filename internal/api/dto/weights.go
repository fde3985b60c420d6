package dto

type PresetRequest struct {
	Name string `json:"name"`
}

type CriterionRequest struct {
	Criterion string   `json:"criterion"`
	Value     *float64 `json:"value"`
}

type WeightsRequest struct {
	Price    int `json:"price"`
	Distance int `json:"distance"`
	Quality  int `json:"quality"`
	Time     int `json:"time"`
}
