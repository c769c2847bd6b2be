package emotion

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vaidyahealth/vaidya-platform/internal/llm"
)

const analysisSystemPrompt = "You are a compassionate mental health assistant analyzing emotional patterns."

// EmotionStat aggregates one emotion across the log.
type EmotionStat struct {
	Name          string  `json:"name"`
	Count         int     `json:"count"`
	MeanIntensity float64 `json:"mean_intensity"`
}

// Summary is the aggregate view of the emotion log.
type Summary struct {
	TotalMessages  int           `json:"total_messages"`
	TopByFrequency []EmotionStat `json:"top_by_frequency"`
	TopByIntensity []EmotionStat `json:"top_by_intensity"`
}

// Summarize computes the top-n emotions by frequency and by mean
// intensity across all three score slots of every entry.
func Summarize(entries []LogEntry, n int) Summary {
	type agg struct {
		count int
		total float64
	}
	byName := make(map[string]*agg)
	for _, e := range entries {
		for _, em := range e.Emotions {
			a := byName[em.Name]
			if a == nil {
				a = &agg{}
				byName[em.Name] = a
			}
			a.count++
			a.total += em.Score
		}
	}

	stats := make([]EmotionStat, 0, len(byName))
	for name, a := range byName {
		stats = append(stats, EmotionStat{
			Name:          name,
			Count:         a.count,
			MeanIntensity: a.total / float64(a.count),
		})
	}

	summary := Summary{TotalMessages: len(entries)}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Name < stats[j].Name
	})
	summary.TopByFrequency = topN(stats, n)

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].MeanIntensity != stats[j].MeanIntensity {
			return stats[i].MeanIntensity > stats[j].MeanIntensity
		}
		return stats[i].Name < stats[j].Name
	})
	summary.TopByIntensity = topN(stats, n)

	return summary
}

func topN(stats []EmotionStat, n int) []EmotionStat {
	if len(stats) > n {
		stats = stats[:n]
	}
	return append([]EmotionStat(nil), stats...)
}

// Assess interpolates the emotion summary and conversation context into
// a prompt and asks the model for a mental-health assessment.
func Assess(ctx context.Context, model llm.Client, entries []LogEntry, summary Summary) (string, error) {
	var b strings.Builder
	b.WriteString("Conversation Emotion Analysis:\n")
	fmt.Fprintf(&b, "- Total Messages: %d\n", summary.TotalMessages)

	b.WriteString("- Most Frequent Emotions: ")
	for i, s := range summary.TopByFrequency {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s (%d)", s.Name, s.Count)
	}
	b.WriteString("\n- Emotion Intensity Summary:\n")
	for _, s := range summary.TopByIntensity {
		fmt.Fprintf(&b, "  %s: Average Intensity = %.2f\n", s.Name, s.MeanIntensity)
	}

	b.WriteString("\nContext: ")
	for i, e := range entries {
		if i > 0 {
			b.WriteString(" | ")
		}
		fmt.Fprintf(&b, "%s: %s", e.Role, e.Message)
	}

	resp, err := model.Complete(ctx, llm.Request{
		System: []string{analysisSystemPrompt},
		Messages: []llm.ChatMessage{{
			Role:    llm.ChatRoleUser,
			Content: "Provide a comprehensive mental health assessment based on these emotional patterns:\n" + b.String(),
		}},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("emotion: assessment completion: %w", err)
	}
	return resp.Text, nil
}
