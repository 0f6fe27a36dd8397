package render

import (
	"fmt"
	"strings"
)

// Markdown renders the issue as a single markdown document, section by
// section. Empty sections are omitted entirely.
func (n *Newsletter) Markdown() string {
	k := n.Knowledge
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n**%s**\n\n*Generated: %s*\n\n---\n\n",
		n.Title, n.Subtitle, n.GeneratedAt.Format("January 2, 2006"))

	fmt.Fprintf(&b, "## Executive Summary\n\n%s\n\n---\n\n", k.ExecutiveSummary)

	if len(k.KeyHighlights) > 0 {
		b.WriteString("## Key Highlights / What's New\n\n")
		for i, h := range k.KeyHighlights {
			fmt.Fprintf(&b, "### %d. %s\n\n%s\n\n", i+1, h.Title, h.Description)
		}
	}

	if len(k.FeatureArticles) > 0 {
		b.WriteString("---\n\n## Feature Articles / Deep Dives\n\n")
		for _, a := range k.FeatureArticles {
			fmt.Fprintf(&b, "### %s\n\n", a.Title)
			writeArticleField(&b, "Context / Problem Statement", a.Context)
			writeArticleField(&b, "Key Ideas or Architecture", a.KeyIdeas.String())
			writeArticleField(&b, "Benefits & Trade-offs", a.Benefits.String())
			writeArticleField(&b, "Recommended Best Practices", a.BestPractices.String())
			writeArticleField(&b, "Call to Action", a.CallToAction)
			b.WriteString("---\n\n")
		}
	}

	if len(k.QuickBites) > 0 {
		b.WriteString("## Quick Bites / Short Updates\n\n")
		writeList(&b, k.QuickBites)
	}

	if hasActionItems(k.ActionItems.EngineeringTeams, k.ActionItems.ArchitectureTeams, k.ActionItems.Leadership) {
		b.WriteString("---\n\n## Action Items / Next Steps\n\n")
		writeAudience(&b, "For Engineering Teams", k.ActionItems.EngineeringTeams)
		writeAudience(&b, "For Architecture / Strategy Teams", k.ActionItems.ArchitectureTeams)
		writeAudience(&b, "For Leadership / Decision Makers", k.ActionItems.Leadership)
	}

	if len(n.Diagrams) > 0 {
		b.WriteString("---\n\n## Technical Architecture & Diagrams\n\n")
		for _, d := range n.Diagrams {
			fmt.Fprintf(&b, "### %s\n\n**Purpose:** %s\n\n", d.Title, d.Purpose)
			if d.MermaidCode != "" {
				fmt.Fprintf(&b, "```mermaid\n%s\n```\n\n", d.MermaidCode)
			}
			fmt.Fprintf(&b, "*%s*\n\n---\n\n", d.Description)
		}
	}

	if len(k.Technologies) > 0 {
		fmt.Fprintf(&b, "## Technologies Mentioned\n\n%s\n\n", strings.Join(k.Technologies, ", "))
	}

	if len(k.BestPractices) > 0 {
		b.WriteString("## Best Practices & Recommendations\n\n")
		writeList(&b, k.BestPractices)
	}

	if insights := k.StrategicInsights; insights.BusinessImpact != "" {
		b.WriteString("---\n\n## Strategic Insights\n\n")
		writeArticleField(&b, "Business Impact", insights.BusinessImpact.String())
		writeArticleField(&b, "Risk Factors", insights.RiskFactors.String())
		writeArticleField(&b, "Strategic Opportunities", insights.StrategicOpportunities.String())
		writeArticleField(&b, "Key Metrics", insights.KeyMetrics.String())
	}

	return b.String()
}

func writeArticleField(b *strings.Builder, heading, text string) {
	if text == "" {
		return
	}
	fmt.Fprintf(b, "**%s**\n\n%s\n\n", heading, text)
}

func writeList(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func writeAudience(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", heading)
	writeList(b, items)
}

func hasActionItems(groups ...[]string) bool {
	for _, g := range groups {
		if len(g) > 0 {
			return true
		}
	}
	return false
}
