package ai

import "fmt"

const analysisSystemPrompt = `你是一位溫柔的日記分析助手。閱讀使用者的日記內容後,` +
	`只輸出一個 JSON 物件,格式為 {"summary": string, "mood": string, "tags": string[]}。` +
	`summary 是 1-2 句的摘要;mood 是一個描述整體心情的詞;` +
	`tags 最多 3 個主題標籤。不要輸出任何 JSON 以外的文字。`

func buildAnalysisPrompt(text string) string {
	return fmt.Sprintf("日記內容:\n%s", truncateText(text, 4000))
}

func truncateText(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
