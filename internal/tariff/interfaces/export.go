package interfaces

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	tariff "building-energy/internal/tariff/domain"
)

var exportBands = []tariff.Band{
	tariff.BandOffPeak,
	tariff.BandNightPeak,
	tariff.BandWeekdayPeak,
	tariff.BandWeekendPeak,
}

// BuildBillsPDF renders an itemized PDF for a set of monthly bills.
func BuildBillsPDF(meterID string, bills []tariff.MonthlyBill) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Electricity Bill")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Meter: %s", meterID))
	pdf.Ln(8)

	for _, bill := range bills {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Month: %s  (%s, %s)", bill.Month, bill.VoltageLevel, bill.DemandMethod))
		pdf.Ln(7)
		pdf.SetFont("Arial", "", 10)

		pdf.Cell(0, 6, fmt.Sprintf("Energy: %.0f kWh  (OP %.0f / NP %.0f / WDP %.0f / WEDP %.0f)",
			bill.KWhTotal,
			bill.KWhByBand[tariff.BandOffPeak],
			bill.KWhByBand[tariff.BandNightPeak],
			bill.KWhByBand[tariff.BandWeekdayPeak],
			bill.KWhByBand[tariff.BandWeekendPeak]))
		pdf.Ln(6)

		rows := [][2]string{
			{"TOU energy (OMR)", fmt.Sprintf("%.3f", bill.TOUEnergyOMR)},
			{"Capacity CPR (OMR)", fmt.Sprintf("%.3f", bill.CapacityCPR)},
			{"Capacity NCPR (OMR)", fmt.Sprintf("%.3f", bill.CapacityNCPR)},
			{"Capacity CGR (OMR)", fmt.Sprintf("%.3f", bill.CapacityCGR)},
			{"Supply (OMR)", fmt.Sprintf("%.3f", bill.SupplyOMR)},
			{"Subtotal (OMR)", fmt.Sprintf("%.3f", bill.SubtotalOMR)},
			{"VAT (OMR)", fmt.Sprintf("%.3f", bill.VATOMR)},
			{"Total (OMR)", fmt.Sprintf("%.3f", bill.TotalBillOMR)},
		}
		for _, row := range rows {
			pdf.CellFormat(70, 6, row[0], "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, row[1], "1", 0, "R", false, 0, "")
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildBillsXLSX renders an XLSX workbook with a summary sheet and one
// by-band breakdown sheet.
func BuildBillsXLSX(meterID string, bills []tariff.MonthlyBill) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "bills"
	bandsSheet := "energy_by_band"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(bandsSheet)

	header := []string{
		"Month", "Energy (kWh)", "TOU Energy (OMR)", "DC (kW)", "DNC (kW)",
		"CPR (OMR)", "NCPR (OMR)", "CGR (OMR)", "Supply (OMR)",
		"Subtotal (OMR)", "VAT (OMR)", "Total (OMR)",
	}
	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(summarySheet, cell, title)
	}
	for i, bill := range bills {
		row := i + 2
		values := []any{
			bill.Month, bill.KWhTotal, bill.TOUEnergyOMR, bill.DCKW, bill.DNCKW,
			bill.CapacityCPR, bill.CapacityNCPR, bill.CapacityCGR, bill.SupplyOMR,
			bill.SubtotalOMR, bill.VATOMR, bill.TotalBillOMR,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(summarySheet, cell, value)
		}
	}

	_ = f.SetCellValue(bandsSheet, "A1", "Month")
	for col, band := range exportBands {
		cell, _ := excelize.CoordinatesToCellName(col+2, 1)
		_ = f.SetCellValue(bandsSheet, cell, string(band))
	}
	for i, bill := range bills {
		row := i + 2
		_ = f.SetCellValue(bandsSheet, fmt.Sprintf("A%d", row), bill.Month)
		for col, band := range exportBands {
			cell, _ := excelize.CoordinatesToCellName(col+2, row)
			_ = f.SetCellValue(bandsSheet, cell, bill.KWhByBand[band])
		}
	}

	_ = f.SetCellValue(summarySheet, "A1", "Month")
	if meterID != "" {
		_ = f.SetDocProps(&excelize.DocProperties{Title: "Electricity bills for " + meterID})
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildBillsCSV renders a flat CSV of monthly bills.
func BuildBillsCSV(bills []tariff.MonthlyBill) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{
		"month", "kwh_total", "tou_energy_omr", "dc_kw", "dnc_kw",
		"capacity_cpr_omr", "capacity_ncpr_omr", "capacity_cgr_omr",
		"supply_omr", "subtotal_omr", "vat_omr", "total_omr",
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}
	for _, bill := range bills {
		record := []string{
			bill.Month,
			formatFloat(bill.KWhTotal),
			formatFloat(bill.TOUEnergyOMR),
			formatFloat(bill.DCKW),
			formatFloat(bill.DNCKW),
			formatFloat(bill.CapacityCPR),
			formatFloat(bill.CapacityNCPR),
			formatFloat(bill.CapacityCGR),
			formatFloat(bill.SupplyOMR),
			formatFloat(bill.SubtotalOMR),
			formatFloat(bill.VATOMR),
			formatFloat(bill.TotalBillOMR),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
