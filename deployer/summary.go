package deployer

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
)

// PrintManifest writes the manifest as a table, one row per contract.
func PrintManifest(w io.Writer, m *Manifest) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Contract", "Code ID", "Address", "Transaction"})
	table.SetAutoWrapText(false)
	for _, name := range m.Names() {
		record := m.Contracts[name]
		address := record.ContractAddress
		if address == "" {
			address = "-"
		}
		table.Append([]string{name, fmt.Sprint(record.CodeID), address, record.TransactionHash})
	}
	table.Render()
}
