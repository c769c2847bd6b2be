package insights

import (
	"fmt"
	"strings"

	"github.com/vaidyahealth/vaidya-platform/internal/store"
)

// buildRecommendationPrompt interpolates profile and tracking fields into
// the single-turn prompt sent to the model. Zero values render as the
// same placeholders the original prompt used.
func buildRecommendationPrompt(profile *store.PatientProfile, entry store.DailyTrackingEntry) string {
	var b strings.Builder
	b.WriteString("Given the following patient information and daily tracking data, provide a personalized health recommendation:\n\n")

	b.WriteString("Profile Information:\n")
	fmt.Fprintf(&b, "Height: %s cm\n", orNA(profile.HeightCm))
	fmt.Fprintf(&b, "Weight: %s kg\n", orNA(profile.WeightKg))
	fmt.Fprintf(&b, "Blood Group: %s\n", orDefault(profile.BloodGroup, "N/A"))
	fmt.Fprintf(&b, "Medical Conditions: %s\n", orDefault(profile.Disease, "None"))
	fmt.Fprintf(&b, "Allergies: %s\n", orDefault(profile.Allergies, "None"))
	fmt.Fprintf(&b, "Previous Surgeries: %s\n", orDefault(profile.PreviousSurgeries, "None"))
	fmt.Fprintf(&b, "Current Medications: %s\n", orDefault(profile.CurrentMedications, "None"))

	b.WriteString("\nToday's Tracking Data:\n")
	fmt.Fprintf(&b, "Sleep Duration: %.1f hours\n", entry.SleepHours)
	fmt.Fprintf(&b, "Water Intake: %d glasses\n", entry.WaterIntake)
	fmt.Fprintf(&b, "Exercise Duration: %d minutes\n", entry.ExerciseMinutes)
	fmt.Fprintf(&b, "Mood: %s\n", orDefault(entry.Mood, "N/A"))
	fmt.Fprintf(&b, "Stress Level: %d/5\n", entry.StressLevel)
	fmt.Fprintf(&b, "Meal Quality: %d/5\n", entry.MealQuality)
	fmt.Fprintf(&b, "Additional Notes: %s\n", entry.Notes)

	b.WriteString(`
Please provide a comprehensive health recommendation including:
1. Sleep quality assessment and suggestions
2. Hydration status and recommendations
3. Exercise routine evaluation considering previous surgeries and current medications
4. Mental wellness insights
5. Dietary suggestions based on meal quality
6. Specific considerations based on medical conditions
7. Short-term and long-term health goals
`)
	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func orNA(v int) string {
	if v == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%d", v)
}
