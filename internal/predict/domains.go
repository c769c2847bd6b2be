// Package predict runs image-based disease classification demos. Each
// model key names a fixed label set; the image is preprocessed the same
// way for every model and scored by a hosted classifier.
package predict

// ModelInfo describes one registered prediction model.
type ModelInfo struct {
	Key    string
	Title  string
	Labels []string
}

// models maps URL keys to their label sets. Label order must match the
// classifier's output vector.
var models = map[string]ModelInfo{
	"eye": {
		Key:    "eye",
		Title:  "Eye Disease Prediction",
		Labels: []string{"Cataract", "Diabetic Retinopathy", "Glaucoma", "Normal"},
	},
	"heart": {
		Key:    "heart",
		Title:  "Heart Disease Prediction",
		Labels: []string{"Healthy", "Heart Disease"},
	},
	"hairfall": {
		Key:    "hairfall",
		Title:  "Hairfall Prediction",
		Labels: []string{"Stage1", "Stage2", "Stage3"},
	},
	"skin": {
		Key:   "skin",
		Title: "Skin Disease Prediction",
		Labels: []string{
			"Acne", "Actinic_Keratosis", "Bullous", "DrugEruption", "Eczema",
			"Infestations_Bites", "Lichen", "Lupus", "Moles", "Seborrh_Keratoses",
			"Sun_Sunlight_Damage", "Vasculitis", "Vitiligo", "Warts",
		},
	},
}

// Lookup returns the model registered under key.
func Lookup(key string) (ModelInfo, bool) {
	m, ok := models[key]
	return m, ok
}

// Models lists the registered models. Map iteration order applies; use
// ModelInfo.Key for stable addressing.
func Models() []ModelInfo {
	out := make([]ModelInfo, 0, len(models))
	for _, m := range models {
		out = append(out, m)
	}
	return out
}
