package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ouestdata/rne-client/pkg/rne"
)

// financialsCmd represents the financials command.
var financialsCmd = &cobra.Command{
	Use:   "financials <siren>",
	Short: "Show financial metrics from the machine-readable filings",
	Long: `List every machine-readable annual-accounts filing of a company
and the metrics extracted from it: revenue, equity, profit/loss and
headcount, for the current and the previous exercise.

Example:
  rne-fetch financials 552032534`,
	Args: cobra.ExactArgs(1),
	Run:  runFinancials,
}

func runFinancials(cmd *cobra.Command, args []string) {
	_, opts, err := loadOptions()
	exitOnError(err, "failed to load configuration")

	client, err := rne.NewAnnualAccountsClient(cmd.Context(), opts, args[0])
	exitOnError(err, "failed to fetch financial statements")
	defer client.Close()

	count := client.BilansSaisisLen()
	if count == 0 {
		fmt.Println("No machine-readable filings available.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Closing", "Type", "Revenue", "Equity", "Profit/Loss", "Headcount"})

	for i := 0; i < count; i++ {
		closing, _ := client.DateCloture(i)
		typ, _ := client.TypeBilan(i)

		t.AppendRow(table.Row{
			i,
			closing,
			string(typ),
			metricCell(client.Revenue(i)),
			metricCell(client.Equity(i)),
			metricCell(client.ProfitLoss(i)),
			metricCell(client.Headcount(i)),
		})
	}

	t.Render()
}

// metricCell renders an extracted metric, or a dash when the filing does
// not carry it.
func metricCell(value int64, err error) string {
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%d", value)
}
