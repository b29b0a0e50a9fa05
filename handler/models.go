package handler

// PromptResponse is the JSON body returned when generation succeeds.
type PromptResponse struct {
	Text string `json:"text"`
}

// ErrorResponse is the JSON body returned for every failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
