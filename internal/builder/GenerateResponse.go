package builder

import (
	"fmt"
	"regexp"
	"strings"

	"sidehustle_server/internal/builder/templates"
)

var helpPattern = regexp.MustCompile(`(?i)help|what can you do|how does this work`)

var greetings = []string{"hi", "hello", "hey", "greetings"}

// GenerateResponse turns a free-text prompt into the assistant's Markdown
// reply. Greetings and help requests get canned text; anything else is
// answered with a rendered AppPlan. The result depends only on prompt.
func GenerateResponse(prompt string) string {
	normalized := strings.TrimSpace(strings.ToLower(prompt))
	for _, g := range greetings {
		if normalized == g {
			return templates.GetGreetingReply()
		}
	}

	if helpPattern.MatchString(prompt) {
		return templates.GetHelpReply()
	}

	return RenderPlan(BuildPlan(prompt))
}

// RenderPlan formats a plan as the Markdown report shown in the builder chat.
func RenderPlan(plan AppPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# 🎯 App Plan: %s\n\n", plan.Summary)

	b.WriteString("## 📋 Overview\n")
	b.WriteString(templates.PlanOverview + "\n\n")

	fmt.Fprintf(&b, "## 📄 Pages (%d)\n", len(plan.Pages))
	for i, page := range plan.Pages {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, page)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## ✨ Key Features (%d)\n", len(plan.Features))
	writeNumbered(&b, plan.Features)
	b.WriteString("\n")

	b.WriteString("## 🗄️ Data Model (Motoko Types)\n")
	blocks := make([]string, 0, len(plan.DataModel))
	for _, model := range plan.DataModel {
		blocks = append(blocks, "```motoko\n"+model+"\n```")
	}
	b.WriteString(strings.Join(blocks, "\n\n") + "\n\n")

	b.WriteString("## 🛠️ Tech Stack\n")
	writeBulleted(&b, plan.TechStack)
	b.WriteString("\n")

	b.WriteString("## 📝 Implementation Steps\n")
	writeNumbered(&b, plan.Steps)
	b.WriteString("\n")

	b.WriteString("## 🎯 Next Steps\n")
	writeNumbered(&b, templates.NextSteps())
	b.WriteString("\n")

	b.WriteString("## 💡 Pro Tips\n")
	writeBulleted(&b, templates.ProTips())
	b.WriteString("\n")

	b.WriteString(templates.PlanClosing)

	return b.String()
}

func writeNumbered(b *strings.Builder, items []string) {
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}

func writeBulleted(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "• %s\n", item)
	}
}
