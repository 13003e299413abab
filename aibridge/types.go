package aibridge

import "fmt"

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ImageConfig *imageConfig `json:"imageConfig,omitempty"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func mockupPrompt(userPrompt string) string {
	return fmt.Sprintf("You are a professional product designer. I have a mockup of a tote bag with some elements (text/emojis) placed on it. "+
		"Analyze the provided image and generate a high-quality, photorealistic professional product studio shot of a real tote bag that implements this design beautifully. "+
		"Ensure the bag looks premium and the design elements are integrated naturally into the fabric texture. "+
		"User's additional context: %s.", userPrompt)
}

func purePrompt(concept string) string {
	return fmt.Sprintf("Professional product photography of a premium tote bag. Design concept: %s. Studio lighting, clean background, 8k resolution.", concept)
}
