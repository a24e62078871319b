package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/domain/enum"
	"github.com/hkpos/hkpos-api/internal/domain/repository"
	"github.com/hkpos/hkpos-api/pkg/apperror"
	"github.com/hkpos/hkpos-api/pkg/printer"
)

// PrinterService handles receipt formatting, thermal printing and the cash
// drawer. Printing is a side effect of checkout: it runs after commit and a
// printer failure never fails the sale.
type PrinterService struct {
	printer      printer.Printer
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
	printerType  string
	width        int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	saleRepo repository.SaleRepository,
	settingsRepo repository.SettingsRepository,
	printerType string,
	width int,
) *PrinterService {
	if width <= 0 {
		width = 32
	}
	return &PrinterService{
		printer:      p,
		saleRepo:     saleRepo,
		settingsRepo: settingsRepo,
		printerType:  printerType,
		width:        width,
	}
}

// SaleCommitted prints the receipt for a freshly committed sale and pops the
// drawer when the tender included cash. Runs in the background after
// checkout; errors are logged and swallowed.
func (s *PrinterService) SaleCommitted(sale *entity.Sale) {
	receipt := s.buildReceipt(context.Background(), sale)
	data := s.FormatReceipt(receipt)
	for _, p := range sale.Payments {
		if p.Method == enum.MethodCash {
			data = append(data, printer.DrawerKick()...)
			break
		}
	}
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (receipt #%d): %v", sale.ReceiptNo, err)
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// OpenDrawer fires the drawer kick pulse without printing anything.
func (s *PrinterService) OpenDrawer() error {
	if err := s.printer.Print(printer.DrawerKick()); err != nil {
		return fmt.Errorf("failed to open drawer: %w", err)
	}
	return nil
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "PRINTER TEST",
		},
		ReceiptNo: 0,
		Date:      time.Now().Format("2006-01-02 15:04"),
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: "1", UnitPrice: 10.00, Total: 10.00},
			{Name: "Test Item 2", Quantity: "2", UnitPrice: 5.00, Total: 10.00},
		},
		SubTotal: 20.00,
		TaxTotal: 0.00,
		Total:    20.00,
	}

	data := s.FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintSaleReceipt reprints the receipt for a stored sale. The receipt is
// rebuilt entirely from persisted data, so it matches the original even if
// tax profiles or product prices changed since.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, receiptNo int64) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, receiptNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewSaleNotFoundError()
	}

	receipt := s.buildReceipt(ctx, sale)
	data := s.FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (receipt #%d): %v", receiptNo, err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

func (s *PrinterService) buildReceipt(ctx context.Context, sale *entity.Sale) *entity.Receipt {
	storeName := "HK POS"
	if settings, err := s.settingsRepo.Get(ctx); err == nil && settings != nil {
		storeName = settings.BusinessName
	}

	receipt := &entity.Receipt{
		Header:    entity.ReceiptHeader{StoreName: storeName},
		ReceiptNo: sale.ReceiptNo,
		Date:      sale.SoldAt.Format("2006-01-02 15:04"),
		SubTotal:  float64(sale.SubTotal) / 100,
		TaxTotal:  float64(sale.TaxTotal) / 100,
		Total:     float64(sale.GrandTotal) / 100,
		Refunded:  sale.Status == enum.SaleStatusRefunded,
	}

	if len(sale.TaxBreakdown) > 0 {
		receipt.Taxes = make(map[string]float64, len(sale.TaxBreakdown))
		for name, cents := range sale.TaxBreakdown {
			receipt.Taxes[name] = float64(cents) / 100
		}
	}

	for _, item := range sale.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity.String(),
			UnitPrice: float64(item.UnitPrice) / 100,
			Total:     float64(item.LineTotal) / 100,
		})
	}

	for _, p := range sale.Payments {
		receipt.Tenders = append(receipt.Tenders,
			fmt.Sprintf("%s %.2f", p.Method.Label(), float64(p.Amount)/100))
	}

	return receipt
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func (s *PrinterService) FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Receipt:", fmt.Sprintf("#%d", r.ReceiptNo)).
		KeyValue("Date:", r.Date)

	if r.Refunded {
		doc.SetBold(true).Text("*** REFUNDED ***").SetBold(false)
	}

	doc.Separator('-')

	// Items
	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity != "1" {
			doc.TextF("  @ %.2f each", item.UnitPrice)
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.SubTotal))
	names := make([]string, 0, len(r.Taxes))
	for name := range r.Taxes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		doc.KeyValue(name+":", fmt.Sprintf("%.2f", r.Taxes[name]))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	for _, tender := range r.Tenders {
		doc.Text(tender)
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
