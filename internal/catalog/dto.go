// AngelaMos | 2026
// dto.go

package catalog

type TasteResponse struct {
	Acidity        int      `json:"acidity"`
	Body           int      `json:"body"`
	AcidityPercent int      `json:"acidity_percent"`
	BodyPercent    int      `json:"body_percent"`
	TastingNotes   []string `json:"tasting_notes"`
}

type ProductResponse struct {
	ID         string         `json:"id"`
	OriginName string         `json:"origin_name"`
	Region     string         `json:"region,omitempty"`
	Taste      *TasteResponse `json:"taste,omitempty"`
}

type StoryResponse struct {
	ProductResponse
	Farmer    string `json:"farmer,omitempty"`
	Process   string `json:"process,omitempty"`
	Harvest   string `json:"harvest,omitempty"`
	Altitude  string `json:"altitude,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Narrative string `json:"story"`
}

func ToProductResponse(p *Product) ProductResponse {
	resp := ProductResponse{
		ID:         p.ID,
		OriginName: p.OriginName,
		Region:     p.Story.Region,
	}

	if p.Taste != nil {
		resp.Taste = &TasteResponse{
			Acidity:        p.Taste.Acidity,
			Body:           p.Taste.Body,
			AcidityPercent: LevelPercent(p.Taste.Acidity),
			BodyPercent:    LevelPercent(p.Taste.Body),
			TastingNotes:   p.Taste.TastingNotes,
		}
	}

	return resp
}

func ToStoryResponse(p *Product) StoryResponse {
	return StoryResponse{
		ProductResponse: ToProductResponse(p),
		Farmer:          p.Story.Farmer,
		Process:         p.Story.Process,
		Harvest:         p.Story.Harvest,
		Altitude:        p.Story.Altitude,
		ImageURL:        p.Story.ImageURL,
		Narrative:       p.Story.Narrative,
	}
}

func ToProductResponseList(products []Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}
