package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ningg/checkstyle/internal/render"
	"github.com/ningg/checkstyle/pkg/checks"
	"github.com/ningg/checkstyle/pkg/engine"
)

// rulesFormatYAML dumps the registry as YAML for machine consumption.
const rulesFormatYAML = "yaml"

// ruleDoc is the YAML shape of one registered check.
type ruleDoc struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Properties  []propDoc `yaml:"properties,omitempty"`
}

// propDoc is the YAML shape of one check property.
type propDoc struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Default     any    `yaml:"default"`
	Description string `yaml:"description"`
}

// NewRulesCommand creates the rules listing command.
func NewRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available checks and their properties",
		Long:  "List every registered check with its configurable properties and defaults.",
		Args:  cobra.NoArgs,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			infos := engine.DefaultRegistry().Describe()

			switch format {
			case rulesFormatYAML:
				return renderRulesYAML(cobraCmd.OutOrStdout(), infos)
			case render.FormatText:
				renderRulesTable(cobraCmd.OutOrStdout(), infos)

				return nil
			default:
				return fmt.Errorf("%w: %q", render.ErrUnknownFormat, format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", render.FormatText, "Output format: text, yaml")

	return cmd
}

func renderRulesTable(w io.Writer, infos []checks.Info) {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Check", "Description", "Properties"})

	for _, info := range infos {
		tbl.AppendRow(table.Row{info.Name, info.Description, propertySummary(info.Properties)})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d checks", len(infos))})

	fmt.Fprintln(w, tbl.Render())
}

// propertySummary renders one "name=default" pair per line so the table
// stays narrow.
func propertySummary(props []checks.Property) string {
	if len(props) == 0 {
		return "-"
	}

	pairs := make([]string, 0, len(props))
	for _, prop := range props {
		pairs = append(pairs, fmt.Sprintf("%s=%v", prop.Name, prop.Default))
	}

	return strings.Join(pairs, "\n")
}

func renderRulesYAML(w io.Writer, infos []checks.Info) error {
	docs := make([]ruleDoc, 0, len(infos))

	for _, info := range infos {
		doc := ruleDoc{Name: info.Name, Description: info.Description}

		for _, prop := range info.Properties {
			doc.Properties = append(doc.Properties, propDoc{
				Name:        prop.Name,
				Type:        prop.Type.String(),
				Default:     prop.Default,
				Description: prop.Description,
			})
		}

		docs = append(docs, doc)
	}

	encoder := yaml.NewEncoder(w)
	defer encoder.Close()

	if err := encoder.Encode(docs); err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}

	return nil
}
