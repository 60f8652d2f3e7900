package renderer

import (
	"bytes"
	"fmt"

	"github.com/foliokit/folio"
)

// Alerts renders the alert book.
func Alerts(alerts []folio.Alert) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Price Alerts\n\n")
	if len(alerts) == 0 {
		fmt.Fprintln(&b, "No alerts configured.")
		return b.String()
	}

	var cells [][]string
	for _, a := range alerts {
		cells = append(cells, []string{
			a.ID,
			a.Ticker,
			folio.USD(a.Target).String(),
			string(a.Direction),
			fmt.Sprintf("%d", len(a.Recipients())),
			string(a.Status),
			a.LastCheckedString(),
			a.Note,
		})
	}
	b.WriteString(table(
		[]string{"ID", "Ticker", "Target", "Direction", "Subscribers", "Status", "Last Checked", "Note"},
		[]alignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
		cells,
	))
	return b.String()
}
