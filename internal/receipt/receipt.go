// Package receipt renders committed transactions into printable documents:
// an HTML receipt sized for 58mm thermal paper and a raw ESC/POS command for
// a local printer bridge. Rendering failures are reported to the operator
// and never affect persisted state.
package receipt

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	"kasirprof/backend/internal/domain"
)

type StoreInfo struct {
	Name    string
	Address string
	Phone   string
}

type Printer struct {
	info StoreInfo
	tmpl *template.Template
}

func NewPrinter(info StoreInfo) *Printer {
	if info.Name == "" {
		info.Name = "Toko"
	}
	return &Printer{
		info: info,
		tmpl: template.Must(template.New("receipt").Parse(receiptTemplate)),
	}
}

type receiptItem struct {
	Name   string
	Qty    int
	Amount string
}

type receiptData struct {
	Store StoreInfo
	ID    int64
	Date  string
	Items []receiptItem
	Total string
}

func (p *Printer) Render(tx domain.Transaction) (domain.ReceiptResponse, error) {
	data := receiptData{
		Store: p.info,
		ID:    tx.ID,
		Date:  tx.Date.Local().Format("02/01/2006 15:04"),
		Total: FormatRupiah(tx.Total),
	}
	for _, item := range tx.Items {
		data.Items = append(data.Items, receiptItem{
			Name:   item.Name,
			Qty:    item.Quantity,
			Amount: FormatRupiah(item.Price * int64(item.Quantity)),
		})
	}

	var html strings.Builder
	if err := p.tmpl.Execute(&html, data); err != nil {
		return domain.ReceiptResponse{}, fmt.Errorf("render receipt: %w", err)
	}

	lines := p.textLines(tx)
	escpos := []byte{0x1b, 0x40}
	for _, line := range lines {
		escpos = append(escpos, []byte(line)...)
		escpos = append(escpos, '\n')
	}
	// Partial cut.
	escpos = append(escpos, []byte{0x1d, 0x56, 0x41, 0x10}...)

	return domain.ReceiptResponse{
		TransactionID: tx.ID,
		HTML:          html.String(),
		EscposBase64:  base64.StdEncoding.EncodeToString(escpos),
		PreviewText:   strings.Join(lines, "\n"),
		FileName:      fmt.Sprintf("receipt-%d.pdf", tx.ID),
	}, nil
}

func (p *Printer) textLines(tx domain.Transaction) []string {
	lines := []string{
		p.info.Name,
		"========================",
		fmt.Sprintf("ID: %d", tx.ID),
		"Tanggal: " + tx.Date.Local().Format("02/01/2006 15:04"),
		"------------------------",
	}
	for _, item := range tx.Items {
		lines = append(lines, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
		lines = append(lines, "  Rp "+FormatRupiah(item.Price*int64(item.Quantity)))
	}
	lines = append(lines,
		"------------------------",
		"Total: Rp "+FormatRupiah(tx.Total),
		"========================",
		"-- Terima Kasih --",
		"",
	)
	return lines
}

// FormatRupiah renders an amount with dot thousand separators, e.g. 15000
// becomes "15.000".
func FormatRupiah(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}

const receiptTemplate = `<html>
  <head>
    <style>
      body { font-family: 'Courier New', Courier, monospace; color: #000; }
      .container { width: 58mm; margin: 0; padding: 5px; }
      .header { text-align: center; margin-bottom: 10px; }
      .header h1 { margin: 0; font-size: 16px; font-weight: bold; }
      .header p { margin: 2px 0; font-size: 12px; }
      .details, .items-table { margin-bottom: 10px; font-size: 12px; }
      .item { display: flex; justify-content: space-between; padding: 3px 0; border-bottom: 1px dashed #999; font-size: 12px; }
      .total { text-align: right; margin-top: 10px; font-size: 14px; font-weight: bold; }
      .footer { text-align: center; margin-top: 20px; font-size: 10px; color: #555; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>{{.Store.Name}}</h1>
        <p>{{.Store.Address}}</p>
        <p>Telp: {{.Store.Phone}}</p>
      </div>
      <div class="details">
        <p><strong>ID:</strong> {{.ID}}</p>
        <p><strong>Tanggal:</strong> {{.Date}}</p>
      </div>
      <div class="items-table">
        {{- range .Items}}
        <div class="item"><span>{{.Name}} (x{{.Qty}})</span><span>{{.Amount}}</span></div>
        {{- end}}
      </div>
      <div class="total"><p>Total: Rp {{.Total}}</p></div>
      <div class="footer"><p>-- Terima Kasih --</p></div>
    </div>
  </body>
</html>`
