package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ouestdata/rne-client/pkg/rne"
)

// documentsCmd represents the documents command.
var documentsCmd = &cobra.Command{
	Use:   "documents <siren>",
	Short: "List filed documents and scanned filings",
	Long: `List the legal documents (actes) and scanned annual-accounts
filings of a company, with the document IDs needed for download.

Example:
  rne-fetch documents 552032534`,
	Args: cobra.ExactArgs(1),
	Run:  runDocuments,
}

func runDocuments(cmd *cobra.Command, args []string) {
	_, opts, err := loadOptions()
	exitOnError(err, "failed to load configuration")

	client, err := rne.NewActesClient(cmd.Context(), opts, args[0])
	exitOnError(err, "failed to fetch documents")
	defer client.Close()

	actes := client.Listing()
	if len(actes) == 0 {
		fmt.Println("No filed documents available.")
	} else {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetTitle("Actes")
		t.AppendHeader(table.Row{"#", "Filed", "Type", "Document ID"})
		for _, acte := range actes {
			t.AppendRow(table.Row{acte.Position, acte.DateDepot, acte.TypeRdd, acte.ID})
		}
		t.Render()
	}

	bilans := client.Raw().Bilans
	if len(bilans) == 0 {
		fmt.Println("No scanned filings available.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("Bilans (PDF)")
	t.AppendHeader(table.Row{"#", "Closing", "Filed", "Document ID"})
	for i, bilan := range bilans {
		t.AppendRow(table.Row{i, bilan.DateCloture, bilan.DateDepot, bilan.ID})
	}
	t.Render()
}
