package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/wise-agent-toolkit/wise-mcp/pkg/config"
	"github.com/wise-agent-toolkit/wise-mcp/pkg/tools"
)

func main() {
	output := flag.String("output", "TOOLS.md", "Markdown file to write")
	flag.Parse()

	if err := generateMarkdown(tools.All, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("✓ %s generated successfully\n", *output)
	fmt.Printf("  Documented %d tools:\n", len(tools.All))
	for i := range tools.All {
		fmt.Printf("    - %s\n", tools.All[i].Name)
	}
	fmt.Println("\n💡 Reminder: When adding a new tool, register it in pkg/tools/definitions.go All")
}

// formatTable generates a formatted markdown table with aligned columns
func formatTable(headers, alignments []string, rows [][]string) string {
	if len(headers) == 0 || len(rows) == 0 {
		return ""
	}

	// Calculate max width for each column
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder

	// Header row
	sb.WriteString("|")
	for i, h := range headers {
		sb.WriteString(fmt.Sprintf(" %-*s |", widths[i], h))
	}
	sb.WriteString("\n")

	// Separator row with alignment
	sb.WriteString("|")
	for i, w := range widths {
		align := "l" // default left
		if i < len(alignments) {
			align = alignments[i]
		}
		switch align {
		case "c": // center
			sb.WriteString(fmt.Sprintf(" :%s: |", strings.Repeat("-", w-2)))
		case "r": // right
			sb.WriteString(fmt.Sprintf(" %s: |", strings.Repeat("-", w-1)))
		default: // left
			sb.WriteString(fmt.Sprintf(" :%s |", strings.Repeat("-", w-1)))
		}
	}
	sb.WriteString("\n")

	// Data rows
	for _, row := range rows {
		sb.WriteString("|")
		for i, cell := range row {
			if i < len(widths) {
				sb.WriteString(fmt.Sprintf(" %-*s |", widths[i], cell))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// permissions renders the actions a tool requires, e.g. `transfers.create`.
func permissions(def tools.ToolDef) string {
	resources := make([]config.Resource, 0, len(def.Actions))
	for resource := range def.Actions {
		resources = append(resources, resource)
	}
	slices.Sort(resources)

	var out []string
	for _, resource := range resources {
		for _, perm := range def.Actions[resource] {
			out = append(out, fmt.Sprintf("`%s.%s`", resource, perm))
		}
	}
	return strings.Join(out, ", ")
}

// sortedParams lists required parameters first, then by name.
func sortedParams(def tools.ToolDef) []tools.ParamDef {
	params := append([]tools.ParamDef(nil), def.Params...)
	sort.SliceStable(params, func(i, j int) bool {
		if params[i].Required != params[j].Required {
			return params[i].Required
		}
		return params[i].Name < params[j].Name
	})
	return params
}

func paramType(p tools.ParamDef) string {
	if p.Type == tools.ParamTypeIdentifier {
		return "string | integer"
	}
	return string(p.Type)
}

func generateMarkdown(defs []tools.ToolDef, filename string) error {
	var sb strings.Builder

	sb.WriteString("<!-- This file is auto-generated. Do not edit manually. -->\n")
	sb.WriteString("<!-- Run 'go run ./cmd/generate-tools-doc' to regenerate. -->\n\n")

	sb.WriteString("# Available Tools\n\n")
	sb.WriteString("This MCP server exposes the following tools for the Wise API. ")
	sb.WriteString("A tool is only listed by a running server when its configuration grants every required action.\n\n")

	for i := range defs {
		def := &defs[i]
		sb.WriteString(fmt.Sprintf("## `%s`\n\n", def.Name))

		// First paragraph is the main description, the rest become usage tips
		paragraphs := strings.Split(strings.TrimSpace(def.Description), "\n\n")
		sb.WriteString(fmt.Sprintf("> %s\n\n", strings.TrimSpace(paragraphs[0])))

		if len(paragraphs) > 1 {
			sb.WriteString("**Usage Tips:**\n\n")
			for _, para := range paragraphs[1:] {
				var joined []string
				for _, line := range strings.Split(para, "\n") {
					line = strings.TrimSpace(line)
					if line != "" {
						joined = append(joined, line)
					}
				}
				if len(joined) > 0 {
					sb.WriteString(fmt.Sprintf("- %s\n", strings.Join(joined, " ")))
				}
			}
			sb.WriteString("\n")
		}

		sb.WriteString(fmt.Sprintf("**Required actions:** %s\n\n", permissions(*def)))

		params := sortedParams(*def)
		if len(params) == 0 {
			sb.WriteString(formatTable(
				[]string{"", ""},
				[]string{"l", "l"},
				[][]string{{"**Parameters**", "None"}},
			))
			sb.WriteString("\n")
		} else {
			sb.WriteString("**Parameters:**\n\n")
			var rows [][]string
			for _, p := range params {
				req := ""
				if p.Required {
					req = "✅"
				}
				rows = append(rows, []string{
					fmt.Sprintf("`%s`", p.Name),
					fmt.Sprintf("`%s`", paramType(p)),
					req,
					p.Description,
				})
			}
			sb.WriteString(formatTable(
				[]string{"Parameter", "Type", "Required", "Description"},
				[]string{"l", "l", "c", "l"},
				rows,
			))
			sb.WriteString("\n")
		}

		if i < len(defs)-1 {
			sb.WriteString("---\n\n")
		}
	}

	return os.WriteFile(filename, []byte(sb.String()), 0o644)
}
