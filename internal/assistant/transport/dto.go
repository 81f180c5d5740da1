// Package transport defines the assistant's request and response DTOs.
package transport

// ChatMessage is one turn of the conversation, serialized as "Role: text".
type ChatMessage struct {
	Role string `json:"role" validate:"required,oneof=user assistant"`
	Text string `json:"text" validate:"required"`
}

// PropertyContext is the compact listing form the frontend sends for
// grounding. Only fields the model needs to sell are included.
type PropertyContext struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	Beds     int     `json:"beds"`
	Baths    int     `json:"baths"`
	Location string  `json:"location"`
}

// ChatRequest is the public chat endpoint's payload.
type ChatRequest struct {
	UserMessage string            `json:"userMessage" validate:"required,max=4000"`
	Properties  []PropertyContext `json:"properties" validate:"omitempty,max=200"`
	ChatHistory []ChatMessage     `json:"chatHistory" validate:"omitempty,max=100,dive"`
	Language    string            `json:"language" validate:"omitempty,max=20"`
	// KnownLead carries the contact fields extracted in earlier turns so the
	// model never re-asks for them.
	KnownLead LeadInfo `json:"knownLead"`
}

// LeadInfo is the contact data the model extracts across turns.
type LeadInfo struct {
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Email  string `json:"email,omitempty"`
	Intent string `json:"intent,omitempty"`
}

// Complete reports whether all three identity fields were captured.
func (l LeadInfo) Complete() bool {
	return l.Name != "" && l.Phone != "" && l.Email != ""
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}
