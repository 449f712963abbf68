package entity

const (
	LabelDrawing = "Drawing"
	LabelHentai  = "Hentai"
	LabelPorn    = "Porn"
	LabelSexy    = "Sexy"
	LabelNeutral = "Neutral"
)

// ClassificationLabels is the fixed label set of the NSFW model.
var ClassificationLabels = []string{LabelDrawing, LabelHentai, LabelPorn, LabelSexy, LabelNeutral}

type Prediction struct {
	ClassName   string  `json:"className"`
	Probability float64 `json:"probability"`
}
