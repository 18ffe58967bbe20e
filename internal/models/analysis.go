package models

type VideoAnalysis struct {
	Title           string             `json:"title"`
	Topic           string             `json:"topic"`
	Hook            string             `json:"hook"`
	Mood            string             `json:"mood"`
	KeyMoments      []string           `json:"keyMoments"`
	VisualElements  []string           `json:"visualElements"`
	TextSuggestions []string           `json:"textSuggestions"`
	ColorPalette    []string           `json:"colorPalette"`
	TargetEmotion   string             `json:"targetEmotion"`
	Concepts        []ThumbnailConcept `json:"concepts"`
}

type ThumbnailConcept struct {
	Description    string `json:"description"`
	TextOverlay    string `json:"textOverlay"`
	Mood           string `json:"mood"`
	VisualStyle    string `json:"visualStyle"`
	FaceExpression string `json:"faceExpression"`
}

type FaceAnalysis struct {
	Description        string   `json:"description"`
	KeyFeatures        []string `json:"keyFeatures"`
	AgeRange           string   `json:"ageRange"`
	GenderPresentation string   `json:"genderPresentation"`
	PhotoCount         int      `json:"photoCount"`
}
