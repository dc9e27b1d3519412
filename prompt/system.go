package prompt

import (
	"fmt"

	"github.com/birmacher/econ-bot/common"
)

// GetSystemPrompt returns the tutor rules sent ahead of every request
func GetSystemPrompt(settings common.Settings) string {
	basePrompt := getTone(settings) + `
Follow these rules:
- Be correct and clear.
- Do NOT invent official statistics, current GDP or inflation numbers, or policy details unless the user provides them.
- Prefer general theory and simple examples over made-up factual claims.
- Keep language exam-friendly, concise, and structured.
- If you are unsure, say so and provide what can be said confidently.
- Never show your reasoning; reply with the final answer only.`
	if settings.Language != "" && settings.Language != "en-US" {
		basePrompt += fmt.Sprintf("\n- Use %s language, but keep the section headings exactly as given in English.", settings.Language)
	}

	return basePrompt
}

func getTone(settings common.Settings) string {
	tone := "You are an Economics Explainer Bot for students."
	if settings.Tone != "" {
		tone = settings.Tone
	}
	return tone
}
