package dto

type NarrationRequest struct {
	Text string `json:"text" validate:"required"`
}

type NarrationResponse struct {
	AudioDataUrl string `json:"audioDataUrl"`
}
