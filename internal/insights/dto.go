package insights

// AnalyzeImageRequest carries an inline data-URL photo
type AnalyzeImageRequest struct {
	Image string `json:"image"`
}
