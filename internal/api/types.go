package api

// Request and response schemas for the AI gateway. Every capability is a
// JSON POST against the gateway base URL; only the path suffix and schema
// differ. Binary capabilities (/video, /tts) return a raw media blob.

// TextRequest is the /text request body.
type TextRequest struct {
	Prompt            string `json:"prompt"`
	SystemInstruction string `json:"systemInstruction,omitempty"`
	Model             string `json:"model,omitempty"`
}

// TextResponse is the /text response body.
type TextResponse struct {
	Result string `json:"result"`
}

// Image generation modes accepted by /image.
const (
	ImageModeQuality   = "quality"
	ImageModeRealistic = "realistic"
)

// ImageRequest is the /image request body.
type ImageRequest struct {
	Prompt string `json:"prompt"`
	Mode   string `json:"mode"`
}

// ImageResponse carries a base64-encoded image, returned by /image and /edit.
type ImageResponse struct {
	ImageData string `json:"imageData"`
	MimeType  string `json:"mimeType"`
}

// AnalyzeRequest is the /analyze request body.
type AnalyzeRequest struct {
	ImageData string `json:"imageData"`
	MimeType  string `json:"mimeType"`
	Prompt    string `json:"prompt"`
}

// AnalyzeResponse is the /analyze response body.
type AnalyzeResponse struct {
	Result string `json:"result"`
}

// EditRequest is the /edit request body.
type EditRequest struct {
	ImageData  string `json:"imageData"`
	MimeType   string `json:"mimeType"`
	EditPrompt string `json:"editPrompt"`
}

// CodeRequest is the /code request body.
type CodeRequest struct {
	Code     string `json:"code"`
	Mode     string `json:"mode"`
	Language string `json:"language"`
}

// CodeResponse is the /code response body.
type CodeResponse struct {
	Result string `json:"result"`
}

// ChatTurn is one prior message in a chat request history.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatRequest is the /chat request body. History carries the full prior
// conversation; Message is the new user turn.
type ChatRequest struct {
	Message         string     `json:"message"`
	History         []ChatTurn `json:"history"`
	IsReasoningMode bool       `json:"isReasoningMode"`
	EnableSearch    bool       `json:"enableSearch"`
}

// GroundingLink is a supporting web source returned with a grounded answer.
type GroundingLink struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ChatResponse is the /chat response body.
type ChatResponse struct {
	Text           string          `json:"text"`
	GroundingLinks []GroundingLink `json:"groundingLinks,omitempty"`
}

// TripPlanRequest is the /trip-plan request body.
type TripPlanRequest struct {
	Origin         string   `json:"origin"`
	Destination    string   `json:"destination"`
	Days           int      `json:"days"`
	Budget         string   `json:"budget,omitempty"`
	Interests      []string `json:"interests,omitempty"`
	UseSearch      bool     `json:"useSearch"`
	FamilyFriendly bool     `json:"familyFriendly"`
}

// TripPlanResponse is the /trip-plan response body.
type TripPlanResponse struct {
	Itinerary       string          `json:"itinerary"`
	GroundingChunks []GroundingLink `json:"groundingChunks,omitempty"`
}

// TripExtraRequest is the /trip-extra request body. Type is "packing" or
// "budget".
type TripExtraRequest struct {
	Type        string `json:"type"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Days        int    `json:"days"`
	Budget      string `json:"budget,omitempty"`
}

// TripExtraResponse is the /trip-extra response body.
type TripExtraResponse struct {
	Result string `json:"result"`
}

// VideoRequest is the /video request body. The response is a binary video
// blob, not JSON.
type VideoRequest struct {
	Prompt      string `json:"prompt"`
	Image       string `json:"image,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
	AspectRatio string `json:"aspectRatio"`
}

// TTSRequest is the /tts request body. The response is a binary audio blob.
type TTSRequest struct {
	Text      string `json:"text"`
	VoiceName string `json:"voiceName"`
}

// TranscribeRequest is the /transcribe request body.
type TranscribeRequest struct {
	AudioData string `json:"audioData"`
	MimeType  string `json:"mimeType"`
}

// TranscribeResponse is the /transcribe response body.
type TranscribeResponse struct {
	Result string `json:"result"`
}

// Part is one inline media part of a multimodal request.
type Part struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// MultimodalRequest is the /multimodal request body: an ordered set of
// media parts plus a natural-language prompt, submitted as one request.
type MultimodalRequest struct {
	Parts  []Part `json:"parts"`
	Prompt string `json:"prompt"`
}

// MultimodalResponse is the /multimodal response body.
type MultimodalResponse struct {
	Result string `json:"result"`
}

// VoiceChatRequest is the /voice-chat request body.
type VoiceChatRequest struct {
	AudioData string     `json:"audioData"`
	MimeType  string     `json:"mimeType"`
	History   []ChatTurn `json:"history"`
}

// VoiceChatResponse is the /voice-chat response body: the transcribed
// exchange plus a spoken reply.
type VoiceChatResponse struct {
	Transcript string `json:"transcript"`
	Text       string `json:"text"`
	AudioData  string `json:"audioData,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
}

// LoginRequest is the /auth/login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the /auth/register request body.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	UID          string `json:"uid"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	SessionToken string `json:"sessionToken"`
}

// TwoFactorSendRequest is the /auth/2fa/send request body. The code itself
// is delivered out-of-band by the gateway; it never appears in a response.
type TwoFactorSendRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// UploadRequest is the /upload request body for avatar assets.
type UploadRequest struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
	Kind     string `json:"kind"`
}

// UploadResponse is the /upload response body.
type UploadResponse struct {
	URL string `json:"url"`
}
